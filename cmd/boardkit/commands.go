package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/hubertat/boardkit"
	"github.com/hubertat/boardkit/hostcheck"
	"github.com/hubertat/boardkit/infoserver"
	"github.com/hubertat/boardkit/mqtt"
)

var exportFormat string

var pinoutCmd = &cobra.Command{
	Use:   "pinout",
	Short: "Print the header pinout of the board",
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := buildBoard()
		if err != nil {
			return err
		}
		defer board.Release()

		for _, conflict := range boardkit.DuplicateGpioLines(board) {
			log.Warn("duplicate gpio mapping", "conflict", conflict)
		}
		board.PrintPinout(cmd.OutOrStdout())
		return nil
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the board descriptor as json or yaml",
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := buildBoard()
		if err != nil {
			return err
		}
		defer board.Release()

		switch exportFormat {
		case "json":
			return board.WriteJSON(cmd.OutOrStdout())
		case "yaml":
			return board.WriteYAML(cmd.OutOrStdout())
		}
		return errors.Errorf("unknown export format %q (json, yaml)", exportFormat)
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the descriptor and compare it with this host",
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := buildBoard()
		if err != nil {
			return err
		}
		defer board.Release()

		err = boardkit.Validate(board)
		if err != nil {
			return err
		}
		for _, conflict := range boardkit.DuplicateGpioLines(board) {
			log.Warn("duplicate gpio mapping", "conflict", conflict)
		}

		report := hostcheck.New().Check(board)
		report.Print(cmd.OutOrStdout())
		return report.Err()
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the board descriptor over http",
	RunE: func(cmd *cobra.Command, args []string) error {
		board, err := buildBoard()
		if err != nil {
			return err
		}
		defer board.Release()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		is := infoserver.New(conf.HttpAddr, board)
		is.Announce = conf.Announce
		return is.ListenAndServe(ctx)
	},
}

var publishCmd = &cobra.Command{
	Use:   "publish",
	Short: "Publish the board descriptor to the mqtt broker (retained)",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(conf.MqttBroker) == 0 {
			return errors.New("mqtt broker not set")
		}

		board, err := buildBoard()
		if err != nil {
			return err
		}
		defer board.Release()

		mc, err := mqtt.NewMqttClient(conf.MqttBroker, "boardkit-"+conf.Board)
		if err != nil {
			return errors.Wrap(err, "failed to create mqtt client")
		}

		ctx := context.Background()
		err = mc.Connect(ctx)
		if err != nil {
			return err
		}
		defer func() {
			dErr := mc.Disconnect(ctx)
			if dErr != nil {
				log.Warn("mqtt disconnect failed", "err", dErr)
			}
		}()

		topic := mqtt.DescriptorTopic(conf.MqttTopicPrefix, conf.Board)
		err = mqtt.PublishDescriptor(ctx, mc, topic, board)
		if err == nil {
			log.Info("descriptor published", "topic", topic)
		}
		return err
	},
}

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Install boardkit serve as a systemd service",
	RunE: func(cmd *cobra.Command, args []string) error {
		err := bkService.InstallService()
		if err != nil {
			return errors.Wrap(err, "failed to install service")
		}
		log.Info("service installed!")
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json or yaml")
}

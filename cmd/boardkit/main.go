package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hubertat/servicemaker"
	"github.com/spf13/cobra"

	"github.com/hubertat/boardkit"
	"github.com/hubertat/boardkit/boards"
)

var (
	Version string
	Build   string

	configPath string
	boardName  string

	conf boardkit.Config

	bkService = servicemaker.ServiceMaker{
		User:               "boardkit",
		UserGroups:         []string{"gpio", "dialout", "i2c"},
		ServicePath:        "/etc/systemd/system/boardkit.service",
		ServiceDescription: "boardkit service: serves the board pin descriptor over http. github.com/hubertat/boardkit",
		ExecDir:            "/srv/boardkit",
		ExecName:           "boardkit",
	}
)

var rootCmd = &cobra.Command{
	Use:   "boardkit",
	Short: "boardkit - physical pin descriptors for single-board computers",
	Long: `boardkit builds the pin descriptor of a board (header pins, capabilities,
kernel gpio chip/line mapping, uart devices and i2c buses) and exposes it.

Examples:
  boardkit pinout                     # print the header pinout
  boardkit export --format yaml       # dump the descriptor
  boardkit check                      # compare descriptor with this host
  boardkit serve                      # serve descriptor over http`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) (err error) {
		conf, err = boardkit.LoadConfig(configPath)
		if err != nil {
			return
		}
		if len(boardName) > 0 {
			conf.Board = boardName
		}

		level, err := conf.Level()
		if err != nil {
			return
		}
		log.SetLevel(level)
		return
	},
}

func buildBoard() (*boardkit.BoardDescriptor, error) {
	log.Debug("building board descriptor", "board", conf.Board)
	return boards.Build(conf.Board)
}

func main() {
	rootCmd.Version = fmt.Sprintf("%s (%s)", Version, Build)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.json", "path of the configuration file")
	rootCmd.PersistentFlags().StringVar(&boardName, "board", "", "board to describe (overrides config)")

	rootCmd.AddCommand(pinoutCmd, exportCmd, checkCmd, serveCmd, publishCmd, installCmd)
}

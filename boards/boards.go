package boards

import (
	"sort"
	"strings"

	"github.com/hubertat/boardkit"
	"github.com/pkg/errors"
)

type BuildFunc func(opts ...boardkit.Option) (*boardkit.BoardDescriptor, error)

func MapAllBoards() map[string]BuildFunc {
	return map[string]BuildFunc{
		nucIlkName: NucIlk,
	}
}

func Names() (names []string) {
	for name := range MapAllBoards() {
		names = append(names, name)
	}
	sort.Strings(names)
	return
}

func Build(name string, opts ...boardkit.Option) (*boardkit.BoardDescriptor, error) {
	for boardName, build := range MapAllBoards() {
		if strings.EqualFold(boardName, name) {
			return build(opts...)
		}
	}

	return nil, errors.Wrapf(boardkit.ErrUnknownBoard, "%s (known: %s)", name, strings.Join(Names(), ", "))
}

package command

import (
	"context"
	"fmt"
)

type GenresCommand struct {
	deps *Dependencies
}

func NewGenresCommand(deps *Dependencies) *GenresCommand {
	return &GenresCommand{deps: deps}
}

func (c *GenresCommand) Name() string {
	return "genres"
}

func (c *GenresCommand) Description() string {
	return "List selectable genres and languages"
}

func (c *GenresCommand) Execute(_ context.Context, _ map[string]any) error {
	if c == nil || c.deps == nil || c.deps.Formatter == nil || c.deps.SendMessage == nil {
		return fmt.Errorf("genres command not configured")
	}
	return c.deps.SendMessage(c.deps.Formatter.FormatGenres())
}

package check

import (
	"fmt"
	"strings"

	"scopelint/internal/project"
	"scopelint/internal/rule"
)

// ErrorPrefix: custom errors are named `<Contract>_<Name>`.
type ErrorPrefix struct{}

func (ErrorPrefix) ID() rule.ID { return rule.Error }

func (ErrorPrefix) Description() string {
	return "error names are prefixed with the contract name and an underscore"
}

func (ErrorPrefix) Applies(kind project.FileKind) bool {
	return kind.Is(project.KindSrc, project.KindTest, project.KindHandler)
}

func (ErrorPrefix) Check(ctx *Context) {
	for _, c := range ctx.File.Contracts {
		want := c.Name.Name + "_"
		for _, e := range c.Errors {
			if !strings.HasPrefix(e.Name.Name, want) {
				ctx.Report(rule.Error, e.Name.Span,
					fmt.Sprintf("Error '%s' should be prefixed with '%s'", e.Name.Name, want))
			}
		}
	}
}

// EventPrefix: events are named `<Contract>_<Name>`.
type EventPrefix struct{}

func (EventPrefix) ID() rule.ID { return rule.Event }

func (EventPrefix) Description() string {
	return "event names are prefixed with the contract name and an underscore"
}

func (EventPrefix) Applies(kind project.FileKind) bool {
	return kind.Is(project.KindSrc, project.KindTest)
}

func (EventPrefix) Check(ctx *Context) {
	for _, c := range ctx.File.Contracts {
		want := c.Name.Name + "_"
		for _, ev := range c.Events {
			if !strings.HasPrefix(ev.Name.Name, want) {
				ctx.Report(rule.Event, ev.Name.Span,
					fmt.Sprintf("Event '%s' should be prefixed with '%s'", ev.Name.Name, want))
			}
		}
	}
}

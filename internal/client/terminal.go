package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/rpggio/labcoats/internal/domain/activity"
	"github.com/rpggio/labcoats/internal/domain/material"
)

const helpText = `commands:
  list          show materials (* = selected)
  toggle <id>   select or unselect a material
  generate      create an experiment from the selection
  save [n]      save displayed experiment n (default 1)
  saved         show saved experiments
  help          show this help
  quit          exit`

// Terminal is a line-oriented front end over a Session.
type Terminal struct {
	session   *Session
	materials []material.Material
	out       io.Writer
}

// NewTerminal creates a terminal front end. materials is the catalog to offer.
func NewTerminal(session *Session, materials []material.Material, out io.Writer) *Terminal {
	return &Terminal{session: session, materials: materials, out: out}
}

// Run reads commands from in until quit, EOF, or ctx is done.
func (t *Terminal) Run(ctx context.Context, in io.Reader) error {
	t.printf("🧪 Little Lab Coats - type 'help' for commands\n")
	t.list()

	scanner := bufio.NewScanner(in)
	for {
		t.printf("> ")
		if !scanner.Scan() {
			t.printf("\n")
			return scanner.Err()
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := strings.ToLower(fields[0]), fields[1:]

		switch cmd {
		case "quit", "exit":
			return nil
		case "help":
			t.printf("%s\n", helpText)
		case "list":
			t.list()
		case "toggle":
			t.toggle(args)
		case "generate":
			t.generate(ctx)
		case "save":
			t.save(ctx, args)
		case "saved":
			t.saved(ctx)
		default:
			t.printf("unknown command %q, type 'help'\n", cmd)
		}
	}
}

func (t *Terminal) list() {
	selected := t.session.Selected()
	for _, m := range t.materials {
		mark := " "
		if slices.Contains(selected, m.ID) {
			mark = "*"
		}
		t.printf(" [%s] %s %-18s (%s)\n", mark, m.Icon, m.Name, m.ID)
	}
}

func (t *Terminal) toggle(args []string) {
	if len(args) != 1 {
		t.printf("usage: toggle <id>\n")
		return
	}
	if err := t.session.Toggle(args[0]); err != nil {
		t.printf("%v\n", err)
		return
	}
	t.list()
}

func (t *Terminal) generate(ctx context.Context) {
	t.printf("⏳ thinking...\n")
	acts, err := t.session.Generate(ctx)
	if err != nil {
		if errors.Is(err, ErrBusy) {
			t.printf("%v\n", err)
			return
		}
		t.printf("%s\n", t.session.Message())
		return
	}
	t.printf("🎉🎉🎉\n")
	for i, act := range acts {
		t.printActivity(i+1, act)
	}
}

func (t *Terminal) save(ctx context.Context, args []string) {
	n := 1
	if len(args) > 0 {
		parsed, err := strconv.Atoi(args[0])
		if err != nil {
			t.printf("usage: save [n]\n")
			return
		}
		n = parsed
	}
	if err := t.session.Save(ctx, n-1); err != nil {
		t.printf("%v\n", err)
		return
	}
	t.printf("💾 saved!\n")
}

func (t *Terminal) saved(ctx context.Context) {
	count, recent, err := t.session.Recent(ctx)
	if err != nil {
		t.printf("could not load saved experiments: %v\n", err)
		return
	}
	t.printf("Saved experiments: %d\n", count)
	for _, act := range recent {
		t.printf(" - %s: %s\n", act.Name, act.LearningGoal)
	}
}

func (t *Terminal) printActivity(n int, act activity.Activity) {
	t.printf("\n%d. %s (⏱️ %s)\n", n, act.Name, act.TimeEstimate)
	t.printf("   Materials: %s\n", strings.Join(act.Materials, ", "))
	for i, step := range act.Instructions {
		t.printf("   %d) %s\n", i+1, step)
	}
	t.printf("   💡 Parent tip: %s\n", act.ParentTip)
	t.printf("   🎯 Learning goal: %s\n\n", act.LearningGoal)
}

func (t *Terminal) printf(format string, args ...any) {
	fmt.Fprintf(t.out, format, args...)
}

package app

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"ascent/internal/platform/calendar"
)

type commandKind int

const (
	cmdLog commandKind = iota + 1
	cmdUndo
	cmdReset
	cmdDate
	cmdDiscipline
	cmdSessionStart
	cmdSessionEnd
	cmdExportWeek
)

// command is one parsed palette line.
type command struct {
	kind       commandKind
	grade      string
	delta      int
	discipline string
	date       string
	gym        string
}

var errEmptyCommand = errors.New("empty command")

// parseCommand turns a palette line into a command. defaultDiscipline fills
// in log, undo and reset when the line names none; today resolves "today".
func parseCommand(input, defaultDiscipline string, today calendar.Date) (command, error) {
	fields := strings.Fields(input)
	if len(fields) == 0 {
		return command{}, errEmptyCommand
	}
	verb := strings.ToLower(fields[0])
	args := fields[1:]

	switch verb {
	case "log", "undo":
		if len(args) == 0 {
			return command{}, fmt.Errorf("%s needs a grade", verb)
		}
		c := command{kind: cmdLog, grade: args[0], delta: 1, discipline: defaultDiscipline}
		if verb == "undo" {
			c.kind = cmdUndo
			c.delta = -1
		}
		for _, a := range args[1:] {
			if d, ok := disciplineArg(a); ok {
				c.discipline = d
				continue
			}
			n, err := strconv.Atoi(a)
			if err != nil || verb == "undo" {
				return command{}, fmt.Errorf("unexpected argument %q", a)
			}
			c.delta = n
		}
		if c.discipline == "" {
			return command{}, fmt.Errorf("%s needs boulder or rope", verb)
		}
		return c, nil

	case "reset":
		c := command{kind: cmdReset, discipline: defaultDiscipline}
		if len(args) > 0 {
			d, ok := disciplineArg(args[0])
			if !ok {
				return command{}, fmt.Errorf("unknown discipline %q", args[0])
			}
			c.discipline = d
		}
		return c, nil

	case "date":
		if len(args) != 1 {
			return command{}, errors.New("date needs YYYY-MM-DD or today")
		}
		if strings.EqualFold(args[0], "today") {
			return command{kind: cmdDate, date: string(today)}, nil
		}
		d, err := calendar.Parse(args[0])
		if err != nil {
			return command{}, err
		}
		return command{kind: cmdDate, date: string(d)}, nil

	case "discipline":
		if len(args) != 1 {
			return command{}, errors.New("discipline needs boulder, rope or all")
		}
		if strings.EqualFold(args[0], "all") {
			return command{kind: cmdDiscipline}, nil
		}
		d, ok := disciplineArg(args[0])
		if !ok {
			return command{}, fmt.Errorf("unknown discipline %q", args[0])
		}
		return command{kind: cmdDiscipline, discipline: d}, nil

	case "session:start":
		return command{kind: cmdSessionStart, gym: strings.Join(args, " ")}, nil
	case "session:end":
		return command{kind: cmdSessionEnd}, nil
	case "export:week":
		return command{kind: cmdExportWeek}, nil
	}
	return command{}, fmt.Errorf("unknown command %q", verb)
}

func disciplineArg(a string) (string, bool) {
	switch strings.ToLower(a) {
	case "boulder", "b":
		return "boulder", true
	case "rope", "r":
		return "rope", true
	}
	return "", false
}

func (m Model) executePalette(input string) (tea.Model, tea.Cmd) {
	c, err := parseCommand(input, m.discipline, calendar.Of(m.opts.Now()))
	if err != nil {
		if errors.Is(err, errEmptyCommand) {
			m.status = "ready"
		} else {
			m.status = err.Error()
		}
		return m, nil
	}

	switch c.kind {
	case cmdLog, cmdUndo:
		m.status = "logging…"
		return m, m.logCmd(c.discipline, c.grade, c.delta)
	case cmdReset:
		return m, m.resetCmd(c.discipline)
	case cmdDate:
		m.date = calendar.Date(c.date)
		m.status = "jumped to " + c.date
		cmd := m.reloadActive()
		return m, cmd
	case cmdDiscipline:
		m.discipline = c.discipline
		m.status = "showing " + disciplineLabel(m.discipline)
		cmd := m.reloadActive()
		return m, cmd
	case cmdSessionStart:
		return m, m.startSessionCmd(c.gym)
	case cmdSessionEnd:
		return m, m.endSessionCmd()
	case cmdExportWeek:
		return m, m.exportCmd()
	}
	return m, nil
}

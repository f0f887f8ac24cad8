package game

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/darkfang/darkfang/internal/display"
	"github.com/pixil98/go-errors"
)

// AutomationKindCron is the only automation kind. The set is closed: an
// unknown kind fails content validation instead of silently doing nothing.
const AutomationKindCron = "cron"

// AutomationRule is a scheduled trigger+action pair attached to a room.
// The schedule has five fields (minute hour day-of-month month day-of-week),
// each a wildcard or an exact integer. Ranges, lists and steps are not
// supported.
type AutomationRule struct {
	Kind    string `json:"type"`
	Cron    string `json:"cron"`
	Command string `json:"command"`
}

// Validate satisfies storage.ValidatingSpec (via Room).
func (r *AutomationRule) Validate() error {
	el := errors.NewErrorList()

	switch r.Kind {
	case AutomationKindCron:
		if r.Cron == "" {
			el.Add(fmt.Errorf("cron automation requires a cron schedule"))
		} else if _, err := parseCronSchedule(r.Cron); err != nil {
			el.Add(fmt.Errorf("invalid cron schedule %q: %w", r.Cron, err))
		}
	case "":
		el.Add(fmt.Errorf("automation type is required"))
	default:
		el.Add(fmt.Errorf("unknown automation type %q", r.Kind))
	}

	return el.Err()
}

// cronSchedule holds the parsed five-field schedule. A nil field is a
// wildcard; a non-nil field must equal the corresponding time component.
type cronSchedule struct {
	minute  *int
	hour    *int
	day     *int
	month   *int
	weekday *int
}

func parseCronSchedule(spec string) (*cronSchedule, error) {
	fields := strings.Fields(spec)
	if len(fields) != 5 {
		return nil, fmt.Errorf("expected 5 fields, got %d", len(fields))
	}

	cs := &cronSchedule{}
	targets := []**int{&cs.minute, &cs.hour, &cs.day, &cs.month, &cs.weekday}
	for i, field := range fields {
		if field == "*" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("field %d: %q is not a wildcard or integer", i+1, field)
		}
		val := n
		*targets[i] = &val
	}

	return cs, nil
}

func (cs *cronSchedule) matches(t time.Time) bool {
	if cs.minute != nil && *cs.minute != t.Minute() {
		return false
	}
	if cs.hour != nil && *cs.hour != t.Hour() {
		return false
	}
	if cs.day != nil && *cs.day != t.Day() {
		return false
	}
	if cs.month != nil && *cs.month != int(t.Month()) {
		return false
	}
	if cs.weekday != nil && *cs.weekday != int(t.Weekday()) {
		return false
	}
	return true
}

// automationState is the runtime counterpart of an AutomationRule.
type automationState struct {
	rule     *AutomationRule
	schedule *cronSchedule
	lastRun  time.Time
}

func newAutomationState(rule *AutomationRule) (*automationState, error) {
	cs, err := parseCronSchedule(rule.Cron)
	if err != nil {
		return nil, fmt.Errorf("parsing schedule: %w", err)
	}
	return &automationState{rule: rule, schedule: cs}, nil
}

// due reports whether the rule should fire at now. A rule that has never run
// is always due on first evaluation.
func (a *automationState) due(now time.Time) bool {
	if a.lastRun.IsZero() {
		return true
	}
	return a.schedule.matches(now)
}

// run executes the rule's action against its room and records the run time.
// Only "echo <message>" commands are supported; the message may use template
// syntax with the room in scope.
func (a *automationState) run(now time.Time, room *RoomInstance) error {
	defer func() { a.lastRun = now }()

	if a.rule.Command == "" {
		slog.Warn("missing command in cron automation", "room", room.Id())
		return nil
	}

	if !strings.HasPrefix(a.rule.Command, "echo ") {
		slog.Warn("unsupported automation command", "room", room.Id(), "command", a.rule.Command)
		return nil
	}

	message := strings.TrimPrefix(a.rule.Command, "echo ")
	message = strings.ReplaceAll(message, `'`, "")
	message = strings.ReplaceAll(message, `"`, "")

	expanded, err := display.ExpandTemplate(message, struct {
		Room string
		Time time.Time
	}{Room: room.Name(), Time: now})
	if err != nil {
		return fmt.Errorf("expanding automation message: %w", err)
	}

	room.Broadcast(expanded, "")
	return nil
}

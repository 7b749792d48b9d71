package editor

import (
	"fmt"
	"time"
)

type (
	// Alert is a transient user-visible notification; the GUI renders the
	// queue as popups that fade after Duration.
	Alert struct {
		Name     string
		Priority AlertPriority
		Message  string
		Duration time.Duration

		// FadeLevel ramps 0..1 as the popup slides in and back down as it
		// expires; maintained by Update.
		FadeLevel float64
	}

	AlertPriority int

	// Alerts is the model's alert queue. Named alerts replace an earlier
	// alert with the same name instead of stacking, so a repeating warning
	// does not flood the screen.
	Alerts Model
)

const (
	Info AlertPriority = iota
	Warning
	Error
)

const defaultAlertDuration = 3 * time.Second

func (m *Model) Alerts() *Alerts { return (*Alerts)(m) }

func (m *Alerts) Add(message string, priority AlertPriority) {
	m.alerts = append(m.alerts, Alert{
		Priority: priority,
		Message:  message,
		Duration: defaultAlertDuration,
	})
}

func (m *Alerts) AddNamed(name, message string, priority AlertPriority) {
	a := Alert{Name: name, Priority: priority, Message: message, Duration: defaultAlertDuration}
	for i := range m.alerts {
		if m.alerts[i].Name == name {
			m.alerts[i] = a
			return
		}
	}
	m.alerts = append(m.alerts, a)
}

func (m *Alerts) AddAlert(a Alert) {
	if a.Duration == 0 {
		a.Duration = defaultAlertDuration
	}
	m.alerts = append(m.alerts, a)
}

// Iterate calls yield for every queued alert, in order.
func (m *Alerts) Iterate(yield func(index int, a Alert) bool) {
	for i, a := range m.alerts {
		if !yield(i, a) {
			break
		}
	}
}

func (m *Alerts) Count() int { return len(m.alerts) }

// Dismiss removes the alert at index, e.g. when its popup timed out.
func (m *Alerts) Dismiss(index int) {
	if index < 0 || index >= len(m.alerts) {
		return
	}
	m.alerts = append(m.alerts[:index], m.alerts[index+1:]...)
}

const fadeSpeed = 1 / float64(150*time.Millisecond)

// Update advances the alert timers and fade animations by d. Expired alerts
// fade out and are removed once invisible. Returns true while anything is
// still animating, so the GUI knows to keep redrawing.
func (m *Alerts) Update(d time.Duration) bool {
	animating := false
	kept := m.alerts[:0]
	for _, a := range m.alerts {
		a.Duration -= d
		if a.Duration > 0 {
			if a.FadeLevel < 1 {
				a.FadeLevel = min(a.FadeLevel+float64(d)*fadeSpeed, 1)
				animating = true
			}
		} else {
			a.FadeLevel -= float64(d) * fadeSpeed
			if a.FadeLevel <= 0 {
				continue
			}
			animating = true
		}
		kept = append(kept, a)
	}
	m.alerts = kept
	return animating
}

// Alertf queues a formatted alert on the model.
func (m *Model) Alertf(priority AlertPriority, format string, args ...any) {
	m.Alerts().Add(fmt.Sprintf(format, args...), priority)
}

// WarnError queues an error as a named alert when err is non-nil.
func (m *Model) WarnError(err error, name string) {
	if err == nil {
		return
	}
	m.Alerts().AddNamed(name, err.Error(), Error)
}

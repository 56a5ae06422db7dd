package form

import "fmt"

// SchedulingKey identifies the day and time slot of an activity. Two
// activities with the same non-empty key cannot both be attended.
type SchedulingKey string

// Unscheduled is the key of activities that never conflict, such as the
// main conference.
const Unscheduled SchedulingKey = ""

// Activity is one checkbox of the activities fieldset.
type Activity struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Schedule SchedulingKey `json:"schedule,omitempty"`
	Cost     int           `json:"cost"`
	Checked  bool          `json:"checked"`
	Disabled bool          `json:"disabled"`
}

// ConflictsWith reports whether a and b share a time slot.
func (a Activity) ConflictsWith(b Activity) bool {
	return a.ID != b.ID && a.Schedule != Unscheduled && a.Schedule == b.Schedule
}

// Change is the disabled state an activity ends up in after a toggle.
type Change struct {
	ID       string `json:"id"`
	Disabled bool   `json:"disabled"`
}

// Schedule is the authoritative selection set. An activity is disabled while
// at least one checked activity conflicts with it; the set of those
// conflicting activities is tracked per activity so that unchecking one of
// several sources leaves it disabled.
type Schedule struct {
	activities []Activity
	index      map[string]int
	blockers   map[string]map[string]struct{}
}

// NewSchedule builds a Schedule from the catalogue activities. Incoming
// Checked and Disabled flags are ignored; every activity starts unchecked.
func NewSchedule(activities []Activity) (*Schedule, error) {
	s := &Schedule{
		activities: make([]Activity, 0, len(activities)),
		index:      make(map[string]int, len(activities)),
		blockers:   make(map[string]map[string]struct{}),
	}
	for _, a := range activities {
		if _, dup := s.index[a.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateActivity, a.ID)
		}
		a.Checked, a.Disabled = false, false
		s.index[a.ID] = len(s.activities)
		s.activities = append(s.activities, a)
	}
	return s, nil
}

// Toggle sets the checked flag of id and returns the resulting disabled state
// of every activity sharing its time slot. Checking a disabled activity is
// rejected; unchecking is always allowed.
func (s *Schedule) Toggle(id string, checked bool) ([]Change, error) {
	i, ok := s.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownActivity, id)
	}
	if checked && s.disabled(id) {
		return nil, fmt.Errorf("%w: %q", ErrActivityDisabled, id)
	}

	s.activities[i].Checked = checked
	toggled := s.activities[i]

	var changes []Change
	for _, other := range s.activities {
		if !toggled.ConflictsWith(other) {
			continue
		}
		if checked {
			s.block(other.ID, id)
		} else {
			s.unblock(other.ID, id)
		}
		changes = append(changes, Change{ID: other.ID, Disabled: s.disabled(other.ID)})
	}
	return changes, nil
}

// Reset unchecks every checked activity through Toggle.
func (s *Schedule) Reset() []Change {
	var changes []Change
	for _, a := range s.activities {
		if !a.Checked {
			continue
		}
		c, _ := s.Toggle(a.ID, false)
		changes = append(changes, c...)
	}
	return changes
}

// Activities returns a copy of the selection set with Disabled filled in.
func (s *Schedule) Activities() []Activity {
	out := make([]Activity, len(s.activities))
	for i, a := range s.activities {
		a.Disabled = s.disabled(a.ID)
		out[i] = a
	}
	return out
}

// Checked returns the ids of the checked activities in catalogue order.
func (s *Schedule) Checked() []string {
	var ids []string
	for _, a := range s.activities {
		if a.Checked {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Total is the running total of the checked activities.
func (s *Schedule) Total() int { return Total(s.activities) }

func (s *Schedule) disabled(id string) bool { return len(s.blockers[id]) > 0 }

func (s *Schedule) block(id, source string) {
	set, ok := s.blockers[id]
	if !ok {
		set = make(map[string]struct{})
		s.blockers[id] = set
	}
	set[source] = struct{}{}
}

func (s *Schedule) unblock(id, source string) {
	set := s.blockers[id]
	delete(set, source)
	if len(set) == 0 {
		delete(s.blockers, id)
	}
}

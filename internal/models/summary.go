package models

import "time"

// Summary aggregates one working day's tasks.
type Summary struct {
	Start  TaskTime
	End    TaskTime
	Total  time.Duration
	ByName map[string]time.Duration
	Breaks []Task
}

// Summarize reduces a day's tasks to a Summary, or nil when tasks is empty.
//
// Break tasks widen the day span but are excluded from Total and ByName and
// collected in Breaks in input order. An open task contributes its start
// time as a stand-in end so the span is never undefined; its name still
// appears in ByName with whatever its finished intervals summed to.
func Summarize(tasks []Task) *Summary {
	if len(tasks) == 0 {
		return nil
	}

	s := &Summary{
		Start:  tasks[0].Start,
		End:    tasks[0].Start,
		ByName: make(map[string]time.Duration),
	}

	for _, t := range tasks {
		if t.Start.Before(s.Start) {
			s.Start = t.Start
		}
		end := t.Start
		if t.End != nil {
			end = *t.End
		}
		if end.After(s.End) {
			s.End = end
		}

		if t.IsBreak {
			s.Breaks = append(s.Breaks, t)
			continue
		}
		if _, ok := s.ByName[t.Name]; !ok {
			s.ByName[t.Name] = 0
		}
		if d, ok := t.Duration(); ok {
			s.ByName[t.Name] += d
			s.Total += d
		}
	}

	return s
}

package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/noah-isme/tsma-calendar-client/internal/models"
)

const (
	dayLayout  = "Mon Jan 2 2006"
	dateLayout = "2006-01-02"
	none       = "-"
)

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
}

func renderIdentity(w io.Writer, session models.Session) {
	if !session.IsAuthenticated() {
		fmt.Fprintln(w, "Not signed in.")
		fmt.Fprintf(w, "Cohort: %s\n", session.CohortID)
		return
	}
	name, email := "", ""
	if session.Identity != nil {
		name, email = session.Identity.DisplayName, session.Identity.Email
	}
	fmt.Fprintf(w, "Signed in as %s <%s>\n", name, email)
	fmt.Fprintf(w, "Cohort: %s\n", session.CohortID)
}

func renderEntry(w io.Writer, entry models.CalendarEntry, now time.Time) {
	fmt.Fprintf(w, "%s\n", entry.Date.Format(dayLayout))
	if entry.IsHoliday {
		fmt.Fprintln(w, "  Holiday, no class.")
		return
	}

	tw := newTable(w)
	fmt.Fprintf(tw, "  Lesson\t%s\n", orNone(entry.LessonName))
	fmt.Fprintf(tw, "  Objective\t%s\n", orNone(entry.MainObjective))
	fmt.Fprintf(tw, "  Reading\t%s\n", orNone(entry.ReadingDue))
	fmt.Fprintf(tw, "  Code challenge\t%s\n", orNone(entry.CodeChallengeName))
	fmt.Fprintf(tw, "  Word of the day\t%s\n", orNone(entry.WordOfTheDay))
	_ = tw.Flush()

	renderSummaries(w, "  Due", entry.AssignmentsDue, now)
	renderSummaries(w, "  New", entry.NewAssignments, now)
}

func renderSummaries(w io.Writer, heading string, list []models.AssignmentSummary, now time.Time) {
	if len(list) == 0 {
		return
	}
	fmt.Fprintf(w, "%s:\n", heading)
	for _, a := range list {
		fmt.Fprintf(w, "    - %s (%s, %s)\n", a.Name, a.Type.Display(), dueLabel(a, now))
	}
}

func renderCalendar(w io.Writer, entries []models.CalendarEntry) {
	tw := newTable(w)
	fmt.Fprintln(tw, "DATE\tLESSON\tDUE\tNEW")
	for _, e := range entries {
		lesson := orNone(e.LessonName)
		if e.IsHoliday {
			lesson = "Holiday"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n", e.Date.Format(dateLayout), lesson, len(e.AssignmentsDue), len(e.NewAssignments))
	}
	_ = tw.Flush()
}

func renderAssignments(w io.Writer, list []models.Assignment, now time.Time) {
	tw := newTable(w)
	fmt.Fprintln(tw, "ID\tNAME\tTYPE\tDUE\tSTATUS")
	for _, a := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", a.ID, a.Name, a.Type.Display(), formatDay(a.DueDate), status(a, now))
	}
	_ = tw.Flush()
}

func renderAssignment(w io.Writer, a models.Assignment, now time.Time) {
	fmt.Fprintf(w, "%s\n", a.Name)
	tw := newTable(w)
	fmt.Fprintf(tw, "  ID\t%s\n", a.ID)
	kind := string(a.Type.Display())
	if a.Type.IsUnknown() {
		kind = fmt.Sprintf("%s (server sent %q)", kind, a.Type.Raw)
	}
	fmt.Fprintf(tw, "  Type\t%s\n", kind)
	fmt.Fprintf(tw, "  Due\t%s\n", dueLabel(a.AssignmentSummary, now))
	fmt.Fprintf(tw, "  Status\t%s\n", status(a, now))
	if a.CompletionDate != nil {
		fmt.Fprintf(tw, "  Completed\t%s\n", a.CompletionDate.Format(dateLayout))
	}
	_ = tw.Flush()

	if desc := strings.TrimSpace(a.Description); desc != "" {
		fmt.Fprintf(w, "\n%s\n", desc)
	}

	if a.FAQs == nil {
		return
	}
	fmt.Fprintf(w, "\nFAQs (%d)\n", len(a.FAQs))
	for _, faq := range a.FAQs {
		fmt.Fprintf(w, "  Q: %s\n", faq.Question)
		answer := faq.Answer
		if answer == "" {
			answer = "(unanswered)"
		}
		fmt.Fprintf(w, "  A: %s\n", answer)
	}
}

func renderOutline(w io.Writer, outline models.LessonOutline, now time.Time) {
	fmt.Fprintf(w, "%s\n", outline.LessonName)
	if outline.MainObjective != nil {
		fmt.Fprintf(w, "Objective: %s\n", *outline.MainObjective)
	}
	for _, objective := range outline.Objectives {
		fmt.Fprintf(w, "  * %s\n", objective)
	}
	if outline.ReadingDue != nil {
		fmt.Fprintf(w, "Reading: %s\n", *outline.ReadingDue)
	}
	if text := strings.TrimSpace(outline.Outline); text != "" {
		fmt.Fprintf(w, "\n%s\n", text)
	}
	renderSummaries(w, "Assignments", outline.Assignments, now)
}

func renderMetrics(w io.Writer, m models.RequestMetrics) {
	tw := newTable(w)
	fmt.Fprintf(tw, "requests\t%d\n", m.Requests)
	fmt.Fprintf(tw, "failures\t%d\n", m.Failures)
	fmt.Fprintf(tw, "avg duration\t%s\n", m.AverageDuration)
	fmt.Fprintf(tw, "logins\t%d\n", m.Logins)
	fmt.Fprintf(tw, "logouts\t%d\n", m.Logouts)
	_ = tw.Flush()
}

func status(a models.Assignment, now time.Time) string {
	switch {
	case a.IsCompleted():
		return "complete"
	case a.IsOverdue(now):
		return "overdue"
	case a.Progress != "":
		return string(a.Progress)
	default:
		return none
	}
}

func dueLabel(a models.AssignmentSummary, now time.Time) string {
	if a.DueDate == nil {
		return "no due date"
	}
	label := "due " + a.DueDate.Format(dateLayout)
	if a.IsOverdue(now) {
		label += ", overdue"
	}
	return label
}

func formatDay(t *time.Time) string {
	if t == nil {
		return none
	}
	return t.Format(dateLayout)
}

func orNone(s *string) string {
	if s == nil || *s == "" {
		return none
	}
	return *s
}

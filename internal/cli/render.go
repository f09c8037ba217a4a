package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/ghaniswara/workmatch/internal/entity"
	"github.com/ghaniswara/workmatch/internal/usecase/matches"
)

func genders(set []entity.Gender) string {
	if len(set) == 0 {
		return "-"
	}
	parts := make([]string, len(set))
	for i, g := range set {
		parts[i] = string(g)
	}
	return strings.Join(parts, ", ")
}

// card renders a user the way the discover and profile views show them. Age
// is left out when the birth date is missing.
func card(u entity.User, now time.Time) string {
	var b strings.Builder

	name := u.FullName()
	if age, ok := u.Age(now); ok {
		name = fmt.Sprintf("%s, %d", name, age)
	}
	fmt.Fprintf(&b, "  %s\n", name)

	if u.JobTitle != "" || u.Department != "" {
		fmt.Fprintf(&b, "  %s\n", strings.Trim(u.JobTitle+" @ "+u.Department, " @"))
	}
	if u.Bio != "" {
		fmt.Fprintf(&b, "  %q\n", u.Bio)
	}
	return b.String()
}

func profileCard(u entity.User, now time.Time) string {
	var b strings.Builder
	b.WriteString(card(u, now))
	fmt.Fprintf(&b, "  username:    %s\n", u.Username)
	fmt.Fprintf(&b, "  email:       %s\n", u.Email)
	if u.BirthDate != "" {
		fmt.Fprintf(&b, "  birth date:  %s\n", u.BirthDate)
	}
	if u.ProfileImageURL != "" {
		fmt.Fprintf(&b, "  image:       %s\n", u.ProfileImageURL)
	}
	fmt.Fprintf(&b, "  gender:      %s\n", u.Gender)
	fmt.Fprintf(&b, "  interested:  %s\n", genders(u.InterestedInGenders))
	return b.String()
}

func entryLine(e matches.Entry) string {
	line := fmt.Sprintf("  #%-4d %s", e.Counterpart.ID, e.Counterpart.FullName())
	if e.Counterpart.JobTitle != "" {
		line += " (" + e.Counterpart.JobTitle + ")"
	}
	if e.Match.MatchedAt != nil {
		line += "  matched " + e.Match.MatchedAt.Local().Format(time.DateOnly)
	}
	return line + "\n"
}

func messageLine(m entity.Message, selfID uint) string {
	who := m.Sender.FirstName
	if m.SentBy(selfID) {
		who = "you"
	}
	return fmt.Sprintf("  [%s] %s: %s\n", m.SentAt.Local().Format(time.Kitchen), who, m.Content)
}

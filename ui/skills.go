package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderSkills shows the read-only skill catalog advertised by the
// service.
func (a AppView) renderSkills() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Skills"))
	b.WriteString("\n\n")

	if !a.dataModel.Auth.Authenticated() {
		b.WriteString(DimStyle.Render("  Log in to see the available skills."))
	} else if len(a.dataModel.Skills) == 0 {
		b.WriteString(DimStyle.Render("  No skills available."))
	} else {
		for _, skill := range a.dataModel.Skills {
			b.WriteString(fmt.Sprintf("  %s", StatusStyle.Render(skill.Name)))
			if len(skill.Tags) > 0 {
				b.WriteString("  " + DimStyle.Render("["+strings.Join(skill.Tags, ", ")+"]"))
			}
			b.WriteString("\n")
			if skill.Description != "" {
				b.WriteString("    " + skill.Description + "\n")
			}
			b.WriteString("\n")
		}
	}

	bodyHeight := a.height - headerHeight - statusBarHeight
	return lipgloss.NewStyle().
		Padding(1, 2).
		Width(a.width).
		Height(bodyHeight).
		Render(b.String())
}

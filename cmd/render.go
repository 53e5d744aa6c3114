package main

import (
	"fmt"
	"io"
	"strconv"
	"strikeup/domain"
	"strikeup/services"
	"strings"

	"github.com/gookit/color"
	"github.com/olekukonko/tablewriter"
)

func newTable(w io.Writer, header ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(w)
	table.SetHeader(header)
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetRowSeparator("")
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetTablePadding("\t")
	return table
}

func renderProfile(w io.Writer, p domain.Profile) {
	fmt.Fprintf(w, "%s  %s\n", color.New(color.FgBlack, color.BgGreen, color.OpBold).Render(" "+p.Avatar+" "), color.Bold.Render(p.Name))
	table := newTable(w, "Field", "Value")
	table.AppendBulk([][]string{
		{"Email", p.Email},
		{"Location", p.Location},
		{"Skill", string(p.SkillLevel)},
		{"Style", p.BowlingStyle},
		{"Average", strconv.Itoa(p.Average)},
		{"High score", strconv.Itoa(p.HighScore)},
		{"Games", strconv.Itoa(p.GamesPlayed)},
		{"Matches", strconv.Itoa(p.Matches)},
	})
	table.Render()
}

func renderProfiles(w io.Writer, profiles []domain.Profile) {
	if len(profiles) == 0 {
		fmt.Fprintln(w, color.Comment.Render("No bowler matches your filters"))
		return
	}
	table := newTable(w, "ID", "Name", "Location", "Skill", "Average", "Style")
	for _, p := range profiles {
		table.Append([]string{
			strconv.Itoa(int(p.ID)),
			p.Name,
			p.Location,
			string(p.SkillLevel),
			strconv.Itoa(p.Average),
			p.BowlingStyle,
		})
	}
	table.Render()
}

func renderConnections(w io.Writer, connections []services.Connection) {
	if len(connections) == 0 {
		fmt.Fprintln(w, color.Comment.Render("No match yet"))
		return
	}
	table := newTable(w, "With", "Location", "Connected")
	for _, c := range connections {
		table.Append([]string{c.With.Name, c.With.Location, c.Match.Timestamp.Local().Format("2006-01-02 15:04")})
	}
	table.Render()
}

func renderSessions(w io.Writer, sessions []domain.Session) {
	if len(sessions) == 0 {
		fmt.Fprintln(w, color.Comment.Render("No session scheduled"))
		return
	}
	table := newTable(w, "ID", "Location", "When", "Skill", "Spots", "Organizer")
	for _, s := range sessions {
		spots := fmt.Sprintf("%d/%d", s.Participants, s.MaxParticipants)
		if s.IsFull() {
			spots = color.Red.Render(spots + " full")
		}
		table.Append([]string{
			strconv.Itoa(int(s.ID)),
			s.Location,
			s.DateTime.Format(domain.DateTimeLayout),
			string(s.SkillLevel),
			spots,
			strconv.Itoa(int(s.Organizer)),
		})
	}
	table.Render()
}

func renderMessages(w io.Writer, profiles services.IProfileService, messages []domain.Message) {
	if len(messages) == 0 {
		fmt.Fprintln(w, color.Comment.Render("No message"))
		return
	}
	name := func(id domain.UserID) string {
		if p, err := profiles.GetProfile(id); err == nil {
			return p.Name
		}
		return "#" + strconv.Itoa(int(id))
	}
	table := newTable(w, "When", "From", "To", "Message")
	for _, m := range messages {
		table.Append([]string{
			m.Timestamp.Local().Format("2006-01-02 15:04"),
			name(m.FromUserID),
			name(m.ToUserID),
			strings.ReplaceAll(m.Content, "\n", " "),
		})
	}
	table.Render()
}

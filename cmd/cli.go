package main

import (
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strikeup/auth"
	"strikeup/domain"
	"strikeup/errors"
	"strikeup/internal"
	"strings"

	"github.com/gookit/color"
	"github.com/samber/lo"
)

var errUsage = stderrors.New("usage error")

var errNotLoggedIn = fmt.Errorf("%w: not logged in", errors.ErrAuth)

type command struct {
	name      string
	usage     string
	needsUser bool
	run       func(c *cli, me domain.Profile, args []string) error
}

type cli struct {
	app      *internal.App
	out      io.Writer
	commands []command
}

func newCLI(app *internal.App, out io.Writer) *cli {
	return &cli{app: app, out: out, commands: commands()}
}

func commands() []command {
	return []command{
		{"signup", "signup --name N --email E --password P --confirm P --location L --skill S", false, (*cli).signup},
		{"login", "login --email E --password P", false, (*cli).login},
		{"logout", "logout", false, (*cli).logout},
		{"whoami", "whoami", true, (*cli).whoami},
		{"location", "location <new location>", true, (*cli).location},
		{"badges", "badges", true, (*cli).badges},
		{"bowlers", "bowlers [--location L] [--skill S] [--distance D]", true, (*cli).bowlers},
		{"connect", "connect <user id>", true, (*cli).connect},
		{"matches", "matches [--limit N]", true, (*cli).matches},
		{"sessions", "sessions", false, (*cli).sessions},
		{"session", "session <session id>", false, (*cli).session},
		{"create-session", "create-session --location L --at 2006-01-02T15:04 --skill S --max N [--details D]", true, (*cli).createSession},
		{"join", "join <session id>", true, (*cli).join},
		{"leave", "leave <session id>", true, (*cli).leave},
		{"send", "send <user id> <message>", true, (*cli).send},
		{"inbox", "inbox [--limit N]", true, (*cli).inbox},
		{"thread", "thread <user id>", true, (*cli).thread},
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, color.Info.Render("Usage: strikeup <command> [arguments]"))
	for _, cmd := range commands() {
		fmt.Fprintf(w, "  %s\n", cmd.usage)
	}
}

// execute runs one command and reports its outcome on the output.
func (c *cli) execute(args []string) error {
	cmd, found := lo.Find(c.commands, func(cmd command) bool { return cmd.name == args[0] })
	if !found {
		printUsage(c.out)
		return fmt.Errorf("%w: unknown command %q", errUsage, args[0])
	}

	var me domain.Profile
	if cmd.needsUser {
		var ok bool
		if me, ok = c.app.Auth.Current(); !ok {
			c.fail(errNotLoggedIn)
			return errNotLoggedIn
		}
	}
	if err := cmd.run(c, me, args[1:]); err != nil {
		if stderrors.Is(err, errUsage) {
			fmt.Fprintf(c.out, "%s\n  %s\n", color.Warn.Render(err.Error()), cmd.usage)
			return err
		}
		c.fail(err)
		return err
	}
	return nil
}

func (c *cli) exitCode(err error) int {
	if stderrors.Is(err, errUsage) {
		return exitUsage
	}
	return exitRuntime
}

// fail prints err with the severity of its category: user mistakes are
// warnings, storage problems are errors.
func (c *cli) fail(err error) {
	switch {
	case stderrors.Is(err, errors.ErrPersistence):
		fmt.Fprintln(c.out, color.Error.Render("✗ "+err.Error()))
	default:
		fmt.Fprintln(c.out, color.Warn.Render("! "+err.Error()))
	}
}

func (c *cli) success(format string, a ...any) {
	fmt.Fprintln(c.out, color.Success.Render("✓ "+fmt.Sprintf(format, a...)))
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}
	return nil
}

func parseID(args []string, what string) (int, error) {
	if len(args) != 1 {
		return 0, fmt.Errorf("%w: expected a %s id", errUsage, what)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id < 1 {
		return 0, fmt.Errorf("%w: invalid %s id %q", errUsage, what, args[0])
	}
	return id, nil
}

func (c *cli) signup(_ domain.Profile, args []string) error {
	fs := newFlagSet("signup")
	var req auth.SignupRequest
	var skill string
	fs.StringVar(&req.Name, "name", "", "full name")
	fs.StringVar(&req.Email, "email", "", "email")
	fs.StringVar(&req.Password, "password", "", "password")
	fs.StringVar(&req.ConfirmPassword, "confirm", "", "password confirmation")
	fs.StringVar(&req.Location, "location", "", "home location")
	fs.StringVar(&skill, "skill", string(domain.Beginner), "beginner, intermediate or advanced")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	req.SkillLevel = domain.SkillLevel(skill)

	profile, err := c.app.Auth.Signup(req)
	if err != nil {
		return err
	}
	c.success("Welcome to StrikeUp, %s!", profile.Name)
	renderProfile(c.out, profile)
	return nil
}

func (c *cli) login(_ domain.Profile, args []string) error {
	fs := newFlagSet("login")
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	if err := parseFlags(fs, args); err != nil {
		return err
	}

	profile, err := c.app.Auth.Login(*email, *password)
	if err != nil {
		return err
	}
	c.success("Logged in as %s", profile.Name)
	return nil
}

func (c *cli) logout(_ domain.Profile, _ []string) error {
	if err := c.app.Auth.Logout(); err != nil {
		return err
	}
	c.success("Logged out")
	return nil
}

func (c *cli) whoami(me domain.Profile, _ []string) error {
	renderProfile(c.out, me)
	return nil
}

func (c *cli) location(me domain.Profile, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: expected a location", errUsage)
	}
	profile, err := c.app.Profiles.UpdateLocation(me.ID, strings.Join(args, " "))
	if err != nil {
		return err
	}
	c.success("Location set to %s", profile.Location)
	return nil
}

func (c *cli) badges(me domain.Profile, _ []string) error {
	badges, err := c.app.Profiles.Badges(me.ID)
	if err != nil {
		return err
	}
	if len(badges) == 0 {
		fmt.Fprintln(c.out, color.Comment.Render("No badge yet, keep bowling!"))
		return nil
	}
	for _, badge := range badges {
		fmt.Fprintln(c.out, color.Primary.Render("🏆 "+string(badge)))
	}
	return nil
}

func (c *cli) bowlers(me domain.Profile, args []string) error {
	fs := newFlagSet("bowlers")
	var filter domain.CandidateFilter
	var skill string
	fs.StringVar(&filter.Location, "location", "", "part of the location, case-insensitive")
	fs.StringVar(&skill, "skill", string(domain.AnySkill), "all, beginner, intermediate or advanced")
	fs.StringVar(&filter.Distance, "distance", "any", "accepted but not applied")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	filter.SkillLevel = domain.SkillLevel(skill)

	renderProfiles(c.out, c.app.Matches.FilterCandidateUsers(me.ID, filter))
	return nil
}

func (c *cli) connect(me domain.Profile, args []string) error {
	id, err := parseID(args, "user")
	if err != nil {
		return err
	}
	match, err := c.app.Matches.Connect(me.ID, domain.UserID(id))
	if err != nil {
		return err
	}
	other, err := c.app.Profiles.GetProfile(match.Other(me.ID))
	if err != nil {
		return err
	}
	c.success("You are now connected with %s", other.Name)
	return nil
}

func (c *cli) matches(me domain.Profile, args []string) error {
	fs := newFlagSet("matches")
	limit := fs.Int("limit", 0, "maximum number of matches, 0 for all")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	connections, err := c.app.Profiles.RecentMatches(me.ID, *limit)
	if err != nil {
		return err
	}
	renderConnections(c.out, connections)
	return nil
}

func (c *cli) sessions(_ domain.Profile, _ []string) error {
	renderSessions(c.out, c.app.Sessions.ListSessions())
	return nil
}

func (c *cli) session(_ domain.Profile, args []string) error {
	id, err := parseID(args, "session")
	if err != nil {
		return err
	}
	session, err := c.app.Sessions.GetSession(domain.SessionID(id))
	if err != nil {
		return err
	}
	renderSessions(c.out, []domain.Session{session})
	fmt.Fprintln(c.out, session.Details)
	return nil
}

func (c *cli) createSession(me domain.Profile, args []string) error {
	fs := newFlagSet("create-session")
	cmd := domain.CreateSessionCommand{OrganizerID: me.ID}
	var skill string
	fs.StringVar(&cmd.Location, "location", "", "bowling alley")
	fs.StringVar(&cmd.DateTime, "at", "", "date and time, "+domain.DateTimeLayout)
	fs.StringVar(&skill, "skill", string(domain.AnySkill), "all, beginner, intermediate or advanced")
	fs.IntVar(&cmd.MaxParticipants, "max", 4, "maximum number of participants")
	fs.StringVar(&cmd.Details, "details", "", "free text")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	cmd.SkillLevel = domain.SkillLevel(skill)

	session, err := c.app.Sessions.CreateSession(cmd)
	if err != nil {
		return err
	}
	c.success("Session #%d created at %s", session.ID, session.Location)
	return nil
}

func (c *cli) join(me domain.Profile, args []string) error {
	id, err := parseID(args, "session")
	if err != nil {
		return err
	}
	session, err := c.app.Sessions.JoinSession(domain.SessionID(id), me.ID)
	if err != nil {
		return err
	}
	c.success("Joined session #%d (%d/%d)", session.ID, session.Participants, session.MaxParticipants)
	return nil
}

func (c *cli) leave(me domain.Profile, args []string) error {
	id, err := parseID(args, "session")
	if err != nil {
		return err
	}
	session, err := c.app.Sessions.LeaveSession(domain.SessionID(id), me.ID)
	if err != nil {
		return err
	}
	c.success("Left session #%d", session.ID)
	return nil
}

func (c *cli) send(me domain.Profile, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: expected a user id and a message", errUsage)
	}
	id, err := parseID(args[:1], "user")
	if err != nil {
		return err
	}
	if _, err = c.app.Messages.SendMessage(me.ID, domain.UserID(id), strings.Join(args[1:], " ")); err != nil {
		return err
	}
	c.success("Message sent")
	return nil
}

func (c *cli) inbox(me domain.Profile, args []string) error {
	fs := newFlagSet("inbox")
	limit := fs.Int("limit", 0, "maximum number of messages, 0 for the configured default")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	renderMessages(c.out, c.app.Profiles, c.app.Messages.ListRecentActivity(me.ID, *limit))
	return nil
}

func (c *cli) thread(me domain.Profile, args []string) error {
	id, err := parseID(args, "user")
	if err != nil {
		return err
	}
	renderMessages(c.out, c.app.Profiles, c.app.Messages.ListThread(me.ID, domain.UserID(id)))
	return nil
}

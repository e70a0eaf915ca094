package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/noah-isme/sma-console-gateway/internal/backend"
	"github.com/noah-isme/sma-console-gateway/internal/dto"
	"github.com/noah-isme/sma-console-gateway/internal/models"
)

var errStopFeed = errors.New("stop feed")

func commandTable() map[string]command {
	return map[string]command{
		"login":         {"sign in and remember the session", runLogin},
		"logout":        {"forget the stored session", runLogout},
		"whoami":        {"show the signed-in user and their menu", runWhoami},
		"setups":        {"list class subject setups", runSetups},
		"overview":      {"show a student's academic overview", runOverview},
		"enroll":        {"set the courses a student takes in a class", runEnroll},
		"notifications": {"print the notification feed", runNotifications},
		"export":        {"export class or student summaries", runExport},
	}
}

func newFlags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// authed returns the signed-in user and a context carrying their token.
func (a *app) authed(ctx context.Context) (context.Context, models.User, error) {
	if !a.session.IsAuthenticated() {
		return ctx, models.User{}, errors.New("not logged in, run consolectl login")
	}
	current := a.session.Current()
	return backend.WithToken(ctx, current.Token), current.User, nil
}

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := newFlags("login")
	user := fs.String("user", "", "user name")
	password := fs.String("password", os.Getenv("CONSOLE_PASSWORD"), "password (defaults to $CONSOLE_PASSWORD)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	session, err := a.session.Login(ctx, dto.LoginRequest{UserName: *user, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "signed in as %s (%s)\n", session.User.UserName, session.User.Role)
	return nil
}

func runLogout(ctx context.Context, a *app, _ []string) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "signed out")
	return nil
}

func runWhoami(ctx context.Context, a *app, _ []string) error {
	_, user, err := a.authed(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s (%s) id=%s\n", displayName(user), user.Role, user.ID)
	for _, item := range a.policy.NavItems(user.Role) {
		fmt.Fprintf(a.out, "  %-12s %s\n", item.Title, item.Route)
	}
	return nil
}

func runSetups(ctx context.Context, a *app, args []string) error {
	fs := newFlags("setups")
	classID := fs.Int64("class", 0, "only this class")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ctx, user, err := a.authed(ctx)
	if err != nil {
		return err
	}

	var rows []models.ClassSubjectSetup
	if *classID > 0 {
		rows, err = a.setups.ForClass(ctx, user, *classID)
	} else {
		rows, err = a.setups.List(ctx, user)
	}
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLASS\tSEMESTER\tCOURSE\tTEACHERS\tSTUDENTS")
	for _, row := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%d\n",
			row.ClassName, row.Semester, row.CourseName, joinOrDash(row.TeacherNames), len(row.StudentIDs))
	}
	return tw.Flush()
}

func runOverview(ctx context.Context, a *app, args []string) error {
	fs := newFlags("overview")
	studentID := fs.String("student", "", "student id (defaults to yourself)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ctx, user, err := a.authed(ctx)
	if err != nil {
		return err
	}
	id := strings.TrimSpace(*studentID)
	if id == "" {
		id = user.ID
	}

	overview, err := a.setups.StudentOverview(ctx, user, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "student:  %s\n", overview.StudentID)
	fmt.Fprintf(a.out, "semester: %s\n", overview.SemesterLabel())
	fmt.Fprintf(a.out, "classes:  %s\n", joinOrDash(overview.ClassNames))
	fmt.Fprintf(a.out, "courses:  %s\n", joinOrDash(overview.CourseNames))
	fmt.Fprintf(a.out, "teachers: %s\n", joinOrDash(overview.TeacherNames))
	return nil
}

func runEnroll(ctx context.Context, a *app, args []string) error {
	fs := newFlags("enroll")
	classID := fs.Int64("class", 0, "class id")
	studentID := fs.String("student", "", "student id")
	courses := fs.String("courses", "", "comma separated course ids; empty removes the student")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *classID <= 0 || strings.TrimSpace(*studentID) == "" {
		return errors.New("-class and -student are required")
	}
	courseIDs, err := parseIDs(*courses)
	if err != nil {
		return err
	}
	ctx, user, err := a.authed(ctx)
	if err != nil {
		return err
	}

	drafts, err := a.enroll.Update(ctx, user, *classID, strings.TrimSpace(*studentID), courseIDs)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "saved %d offerings for class %d\n", len(drafts), *classID)
	return nil
}

func runNotifications(ctx context.Context, a *app, args []string) error {
	fs := newFlags("notifications")
	follow := fs.Bool("follow", false, "keep printing as notifications arrive")
	asJSON := fs.Bool("json", false, "print each batch as JSON")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ctx, user, err := a.authed(ctx)
	if err != nil {
		return err
	}

	err = a.notes.Stream(ctx, user, func(items []models.Notification) error {
		if *asJSON {
			if err := json.NewEncoder(a.out).Encode(items); err != nil {
				return err
			}
		} else if len(items) > 0 {
			n := items[0]
			fmt.Fprintf(a.out, "[%s] %s: %s\n", n.Type, n.Title, n.Message)
		}
		if !*follow {
			return errStopFeed
		}
		return nil
	})
	if errors.Is(err, errStopFeed) {
		return nil
	}
	return err
}

func runExport(ctx context.Context, a *app, args []string) error {
	fs := newFlags("export")
	kind := fs.String("kind", "classes", "classes or students")
	format := fs.String("format", "csv", "csv or pdf")
	query := fs.String("q", "", "search filter")
	outPath := fs.String("out", "", "output file (defaults to the suggested name)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	ctx, user, err := a.authed(ctx)
	if err != nil {
		return err
	}

	switch *kind {
	case "classes":
		res, err := a.exports.Classes(ctx, user, *format, *query)
		if err != nil {
			return err
		}
		return a.writeExport(res.Filename, res.Body, *outPath)
	case "students":
		res, err := a.exports.Students(ctx, user, *format, *query)
		if err != nil {
			return err
		}
		return a.writeExport(res.Filename, res.Body, *outPath)
	default:
		return fmt.Errorf("unknown export kind %q", *kind)
	}
}

func (a *app) writeExport(filename string, body []byte, outPath string) error {
	if outPath == "" {
		outPath = filename
	}
	if err := os.WriteFile(outPath, body, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "wrote %s (%d bytes)\n", outPath, len(body))
	return nil
}

func parseIDs(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return []int64{}, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil || id <= 0 {
			return nil, fmt.Errorf("invalid course id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func displayName(u models.User) string {
	if u.Name != "" {
		return u.Name
	}
	return u.UserName
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}

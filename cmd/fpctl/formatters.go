package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	userapp "flexible-project/application/user"
	"flexible-project/domain/user"

	"github.com/fatih/color"
)

var (
	errorColor  = color.New(color.FgRed, color.Bold)
	headerColor = color.New(color.FgBlue, color.Bold)
	mutedColor  = color.New(color.FgHiBlack)
)

func roleColor(r user.Role) *color.Color {
	switch r {
	case user.RoleAdministrator:
		return color.New(color.FgRed)
	case user.RoleModerator:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgGreen)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) renderUser(w io.Writer, u user.User) error {
	if c.outputJSON {
		return writeJSON(w, userapp.NewUserResponse(u))
	}
	return c.renderTable(w, []user.User{u})
}

func (c *cli) renderUsers(w io.Writer, users []user.User) error {
	if c.outputJSON {
		out := make([]userapp.UserResponse, 0, len(users))
		for _, u := range users {
			out = append(out, userapp.NewUserResponse(u))
		}
		return writeJSON(w, out)
	}
	return c.renderTable(w, users)
}

func (c *cli) renderTable(w io.Writer, users []user.User) error {
	out := make([]userapp.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, userapp.NewUserResponse(u))
	}

	if len(out) == 0 {
		_, err := fmt.Fprintln(w, mutedColor.Sprint("no users"))
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, headerColor.Sprint("ID\tNAME\tDISPLAY NAME\tROLE\tEMAIL\tAVATAR"))
	for i, r := range out {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.Name, r.DisplayName,
			roleColor(users[i].Data.Role).Sprint(r.Role),
			orDash(r.Email), orDash(r.Avatar))
	}
	return tw.Flush()
}

func orDash(s *string) string {
	if s == nil {
		return mutedColor.Sprint("-")
	}
	return *s
}

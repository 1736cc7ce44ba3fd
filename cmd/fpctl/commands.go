package main

import (
	userapp "flexible-project/application/user"
	"flexible-project/domain/filter"
	"flexible-project/domain/user"

	"github.com/spf13/cobra"
)

func newCreateCmd(c *cli) *cobra.Command {
	var req userapp.CreateUserRequest
	var email, avatar string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		Example: `  fpctl create --name alice --display-name Alice --role moderator --email alice@example.com`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Name == "" || req.DisplayName == "" {
				return usageError("create requires --name and --display-name")
			}
			if cmd.Flags().Changed("email") {
				req.Email = &email
			}
			if cmd.Flags().Changed("avatar") {
				req.Avatar = &avatar
			}
			data, err := req.Data()
			if err != nil {
				return err
			}

			ctx, cancel := c.withTimeout(cmd)
			defer cancel()
			u, err := c.users.Create(ctx, data)
			if err != nil {
				return err
			}
			return c.renderUser(cmd.OutOrStdout(), *u)
		},
	}
	cmd.Flags().StringVar(&req.Name, "name", "", "Unique user name")
	cmd.Flags().StringVar(&req.DisplayName, "display-name", "", "Display name")
	cmd.Flags().StringVar(&req.Role, "role", "", "user, moderator or administrator (default user)")
	cmd.Flags().StringVar(&email, "email", "", "Unique email address")
	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar URL")
	return cmd
}

func newGetCmd(c *cli) *cobra.Command {
	var id, name, email string

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Show the user with an id, name or email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := c.withTimeout(cmd)
			defer cancel()

			var (
				u   *user.User
				err error
			)
			switch {
			case id != "":
				u, err = c.users.FindOneByID(ctx, user.ID(id))
			case name != "":
				var n user.Name
				if n, err = user.NewName(name); err == nil {
					u, err = c.users.FindOneByName(ctx, n)
				}
			case email != "":
				var e user.Email
				if e, err = user.NewEmail(email); err == nil {
					u, err = c.users.FindOneByEmail(ctx, e)
				}
			default:
				return usageError("get requires --id, --name or --email")
			}
			if err != nil {
				return err
			}
			if u == nil {
				return &userapp.Error{Kind: userapp.ErrNoUser, Op: "get"}
			}
			return c.renderUser(cmd.OutOrStdout(), *u)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "User id")
	cmd.Flags().StringVar(&name, "name", "", "User name")
	cmd.Flags().StringVar(&email, "email", "", "User email")
	cmd.MarkFlagsMutuallyExclusive("id", "name", "email")
	return cmd
}

func newListCmd(c *cli) *cobra.Command {
	var roles []string
	var nameRegex string
	var hasEmail, hasAvatar bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users matching all given conditions",
		Example: `  fpctl list --role moderator --role administrator
  fpctl list --name-regex '^a' --has-email=false`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			filters := user.NewFilters()
			if len(roles) > 0 {
				parsed := make([]user.Role, 0, len(roles))
				for _, r := range roles {
					role, err := user.ParseRole(r)
					if err != nil {
						return err
					}
					parsed = append(parsed, role)
				}
				filters = filters.WithRole(user.RoleFilters{In: filter.OneOf(parsed...)})
			}
			if nameRegex != "" {
				filters = filters.WithName(user.NameFilters{Regex: filter.Matches(nameRegex)})
			}
			if cmd.Flags().Changed("has-email") {
				filters = filters.WithEmail(user.EmailFilters{Exists: filter.Eq(hasEmail)})
			}
			if cmd.Flags().Changed("has-avatar") {
				filters = filters.WithAvatar(user.AvatarFilters{Exists: filter.Eq(hasAvatar)})
			}

			ctx, cancel := c.withTimeout(cmd)
			defer cancel()
			users, err := c.users.List(ctx, filters)
			if err != nil {
				return err
			}
			return c.renderUsers(cmd.OutOrStdout(), users)
		},
	}
	cmd.Flags().StringSliceVar(&roles, "role", nil, "Only users with one of these roles")
	cmd.Flags().StringVar(&nameRegex, "name-regex", "", "Only users whose name matches")
	cmd.Flags().BoolVar(&hasEmail, "has-email", false, "Only users with (or without) an email")
	cmd.Flags().BoolVar(&hasAvatar, "has-avatar", false, "Only users with (or without) an avatar")
	return cmd
}

func newUpdateCmd(c *cli) *cobra.Command {
	var id, name, displayName, role, email, avatar string

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change fields of a user",
		Long: `Change fields of a user. All given fields are validated first, then
each is applied as its own update, in the order name, display name, role,
email, avatar. An empty --email or --avatar removes the value.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return usageError("update requires --id")
			}
			flags := cmd.Flags()
			uid := user.ID(id)
			ctx, cancel := c.withTimeout(cmd)
			defer cancel()

			// Every flag is parsed before the first update so that a bad
			// value leaves the user untouched.
			type step func() (*user.User, error)
			var steps []step
			if flags.Changed("name") {
				n, err := user.NewName(name)
				if err != nil {
					return err
				}
				steps = append(steps, func() (*user.User, error) { return c.users.UpdateName(ctx, uid, n) })
			}
			if flags.Changed("display-name") {
				d, err := user.NewDisplayName(displayName)
				if err != nil {
					return err
				}
				steps = append(steps, func() (*user.User, error) { return c.users.UpdateDisplayName(ctx, uid, d) })
			}
			if flags.Changed("role") {
				r, err := user.ParseRole(role)
				if err != nil {
					return err
				}
				steps = append(steps, func() (*user.User, error) { return c.users.UpdateRole(ctx, uid, r) })
			}
			if flags.Changed("email") {
				var e *user.Email
				if email != "" {
					parsed, err := user.NewEmail(email)
					if err != nil {
						return err
					}
					e = &parsed
				}
				steps = append(steps, func() (*user.User, error) { return c.users.UpdateEmail(ctx, uid, e) })
			}
			if flags.Changed("avatar") {
				var a *user.Avatar
				if avatar != "" {
					parsed, err := user.NewAvatar(avatar)
					if err != nil {
						return err
					}
					a = &parsed
				}
				steps = append(steps, func() (*user.User, error) { return c.users.UpdateAvatar(ctx, uid, a) })
			}
			if len(steps) == 0 {
				return usageError("update requires at least one field")
			}

			var u *user.User
			for _, run := range steps {
				updated, err := run()
				if err != nil {
					return err
				}
				u = updated
			}
			return c.renderUser(cmd.OutOrStdout(), *u)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "User id")
	cmd.Flags().StringVar(&name, "name", "", "New unique name")
	cmd.Flags().StringVar(&displayName, "display-name", "", "New display name")
	cmd.Flags().StringVar(&role, "role", "", "New role")
	cmd.Flags().StringVar(&email, "email", "", "New email, empty to remove")
	cmd.Flags().StringVar(&avatar, "avatar", "", "New avatar URL, empty to remove")
	return cmd
}

func newDeleteCmd(c *cli) *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if id == "" {
				return usageError("delete requires --id")
			}
			ctx, cancel := c.withTimeout(cmd)
			defer cancel()
			u, err := c.users.Delete(ctx, user.ID(id))
			if err != nil {
				return err
			}
			return c.renderUser(cmd.OutOrStdout(), *u)
		},
	}
	cmd.Flags().StringVar(&id, "id", "", "User id")
	return cmd
}

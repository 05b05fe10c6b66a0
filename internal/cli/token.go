package cli

import (
	"errors"
	"fmt"

	"Gigbell/pkg/util/myjwt"

	"github.com/spf13/cobra"
)

// newTokenCmd 登录由外部账号系统负责，这里给运维和联调签发 token
func newTokenCmd(opts *rootOptions) *cobra.Command {
	var (
		userID   int64
		role     string
		nickname string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a JWT for a user",
		RunE: func(cmd *cobra.Command, args []string) error {
			if userID <= 0 {
				return errors.New("--user must be a positive id")
			}
			if role != myjwt.RoleUser && role != myjwt.RoleAdmin {
				return fmt.Errorf("unknown role %q", role)
			}
			conf, err := opts.loadConfig()
			if err != nil {
				return err
			}
			m := myjwt.NewManager(conf.JwtConfig.Key, conf.JwtConfig.ExpireHours, conf.JwtConfig.Issuer)
			tok, err := m.GenerateToken(userID, nickname, role)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tok)
			return nil
		},
	}
	cmd.Flags().Int64Var(&userID, "user", 0, "User id")
	cmd.Flags().StringVar(&role, "role", myjwt.RoleUser, "Role: user or admin")
	cmd.Flags().StringVar(&nickname, "nickname", "", "Nickname carried in the token")
	return cmd
}

// Command token issues an access token signed with the configured JWT secret.
// Login happens in the storefront; this is for local development and smoke tests.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/injapanfood/pos-api/internal/config"
	"github.com/injapanfood/pos-api/pkg/utils"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	id := flag.String("id", "dev-cashier", "cashier id")
	name := flag.String("name", "Dev Cashier", "cashier display name")
	email := flag.String("email", "", "cashier e-mail")
	roles := flag.String("roles", "cashier", "comma separated roles")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	cfg := config.Load()

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)
	token, err := jwtManager.GenerateAccessToken(*id, *name, *email, strings.Split(*roles, ","))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to sign token")
	}

	fmt.Println(token)
}

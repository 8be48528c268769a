package config

import (
	"flag"
	"os"
	"time"

	"github.com/papper-tech/auth-service/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-d string   PostgreSQL DSN
//	-k string   path to the RS256 private key PEM
//	-p string   path to the RS256 public key PEM
//	-t int      access token validity, minutes
//	-r int      refresh token validity, hours
//	-o string   cookie domain
//	-e string   Mailgun base URL
//	-m string   Mailgun API key
//	-f string   outbound email sender
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-k", "-p", "-t", "-r", "-o", "-e", "-m", "-f"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.PrivateKeyPath, "k", config.PrivateKeyPath, "private key path")
	fs.StringVar(&config.PublicKeyPath, "p", config.PublicKeyPath, "public key path")

	accessTokenTTL := fs.Int("t", int(config.AccessTokenTTL.Minutes()), "access token validity (in minutes)")
	refreshTokenTTL := fs.Int("r", int(config.RefreshTokenTTL.Hours()), "refresh token validity (in hours)")

	fs.StringVar(&config.CookieDomain, "o", config.CookieDomain, "cookie domain")
	fs.StringVar(&config.MailgunBaseURL, "e", config.MailgunBaseURL, "Mailgun base URL")
	fs.StringVar(&config.MailgunAPIKey, "m", config.MailgunAPIKey, "Mailgun API key")
	fs.StringVar(&config.MailFrom, "f", config.MailFrom, "outbound email sender")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenTTL = time.Duration(*accessTokenTTL) * time.Minute
	config.RefreshTokenTTL = time.Duration(*refreshTokenTTL) * time.Hour
}

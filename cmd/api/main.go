package main

import (
	"os"

	"github.com/spf13/cobra"

	_ "github.com/redmonkez12/skill-assessment-api/docs" // Swagger docs
)

// @title           Skill Assessment API
// @version         1.0
// @description     Onboarding funnel for a skill-assessment platform: signup, profile details, placement tests and review.

// @contact.name   API Support
// @contact.email  support@example.com

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	rootCmd := &cobra.Command{
		Use:   "skill-assessment-api",
		Short: "Skill assessment onboarding API",
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE:  runServe,
	}
	serveCmd.Flags().String("port", "", "Listen port (overrides SERVER_PORT)")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE:  runMigrate,
	}

	rootCmd.AddCommand(serveCmd, migrateCmd)

	// Running without a subcommand starts the server
	rootCmd.RunE = serveCmd.RunE
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// Command token prints a signed editor token for the routes API.
//
//	AUTH_JWT_SECRET=... go run ./cmd/token -name alice -ttl 72h
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"route_editor/internal/middleware"
)

func main() {
	name := flag.String("name", "", "editor name stored in the token subject")
	role := flag.String("role", middleware.RoleEditor, "role claim")
	ttl := flag.Duration("ttl", 72*time.Hour, "token lifetime")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		logrus.WithError(err).Info("No .env file found – relying on env vars")
	}

	secret := os.Getenv("AUTH_JWT_SECRET")
	if secret == "" {
		logrus.Fatal("AUTH_JWT_SECRET is not set")
	}
	if *name == "" {
		logrus.Fatal("-name is required")
	}

	token, err := middleware.GenerateToken([]byte(secret), *name, *role, *ttl)
	if err != nil {
		logrus.WithError(err).Fatal("could not sign token")
	}
	fmt.Println(token)
}

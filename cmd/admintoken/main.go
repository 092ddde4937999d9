// Command admintoken prints an admin JWT for the hingem admin routes, or a
// bcrypt hash for SHUTDOWN_TOKEN_HASH with -hash.
package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/shappycc2010-ctrl/HinGem/pkg/availability"
	"github.com/shappycc2010-ctrl/HinGem/pkg/config"
	"github.com/shappycc2010-ctrl/HinGem/pkg/security/jwt"
)

func main() {
	subject := flag.String("sub", "admin", "token subject")
	hash := flag.String("hash", "", "print the bcrypt hash of this shutdown phrase instead of a token")
	flag.Parse()

	if *hash != "" {
		h, err := availability.HashToken(*hash)
		if err != nil {
			log.Fatalf("hash phrase: %v", err)
		}
		fmt.Println(h)
		return
	}

	cfg := config.Load("", "")
	if cfg.AdminJWTSecret == "" {
		log.Fatal("ADMIN_JWT_SECRET is not set")
	}
	gen := jwt.NewGenerator(cfg.AdminJWTSecret, cfg.AdminJWTIssuer, time.Duration(cfg.AdminJWTTTLMinutes)*time.Minute)
	token, err := gen.Generate(*subject, true)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}

// token emite un JWT de desarrollo firmado con JWT_SECRET para probar la API.
//
// Uso: go run ./cmd/token -user <id> -role admin|bodeguero|vendedor
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/jhoicas/stockledger-api/pkg/config"
	"github.com/jhoicas/stockledger-api/pkg/jwt"
)

func main() {
	userID := flag.String("user", "dev-user", "user_id del token")
	role := flag.String("role", jwt.RoleBodeguero, "rol: admin, bodeguero o vendedor")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *userID, *role, cfg.JWT.Issuer, cfg.JWT.Expiration)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}

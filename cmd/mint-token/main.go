// mint-token genera un JWT de desarrollo con el contexto del trabajador.
// En producción el token lo emite el upstream de autenticación; esta
// herramienta existe para probar la API en local.
//
// Uso:
//
//	go run ./cmd/mint-token -worker <uuid> -role CARE_WORKER -location <uuid>
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tu-usuario/timeclock-pro/pkg/config"
	"github.com/tu-usuario/timeclock-pro/pkg/jwt"
)

func main() {
	workerID := flag.String("worker", "", "worker_id del token (obligatorio)")
	role := flag.String("role", "CARE_WORKER", "rol: CARE_WORKER, MANAGER o ADMIN")
	locationID := flag.String("location", "", "location_id asignada (opcional)")
	expMinutes := flag.Int("exp", 0, "expiración en minutos (default: el de configuración)")
	flag.Parse()

	if *workerID == "" {
		fmt.Fprintln(os.Stderr, "falta -worker")
		flag.Usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}
	if cfg.JWT.Secret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET no configurado")
		os.Exit(1)
	}

	exp := cfg.JWT.Expiration
	if *expMinutes > 0 {
		exp = *expMinutes
	}

	token, err := jwt.Generate(cfg.JWT.Secret, *workerID, *role, *locationID, cfg.JWT.Issuer, exp)
	if err != nil {
		fmt.Fprintln(os.Stderr, "generar token:", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

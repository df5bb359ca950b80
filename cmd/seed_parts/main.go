// seed_parts genera el script SQL que carga el catálogo de repuestos desde un CSV
// (part_no;description;cost).
//
// Uso: go run ./cmd/seed_parts [-latin1] [-db] [ruta/repuestos.csv]
// Por defecto lee repuestos.csv del directorio actual.
// Escribe: internal/infrastructure/postgres/migrations/002_seed_parts.sql
// Con -db hace upsert directo en la base configurada (DATABASE_URL / DB_*) en vez de generar el script.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jhoicas/stockledger-api/internal/domain/entity"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/catalog"
	"github.com/jhoicas/stockledger-api/internal/infrastructure/postgres"
	"github.com/jhoicas/stockledger-api/pkg/config"
	"github.com/jhoicas/stockledger-api/pkg/logger"
)

func main() {
	latin1 := flag.Bool("latin1", false, "el CSV está en ISO-8859-1")
	direct := flag.Bool("db", false, "upsert directo en PostgreSQL")
	flag.Parse()

	csvPath := "repuestos.csv"
	if flag.NArg() > 0 {
		csvPath = flag.Arg(0)
	}
	f, err := os.Open(csvPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	parts, err := catalog.ReadParts(f, *latin1)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	if *direct {
		if err := upsertParts(parts); err != nil {
			fmt.Fprintf(os.Stderr, "Cargar en DB: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Cargados %d repuestos en la base\n", len(parts))
		return
	}

	outPath := filepath.Join(findModuleRoot(), "internal", "infrastructure", "postgres", "migrations", "002_seed_parts.sql")
	out, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()

	if err := catalog.WriteSeedSQL(out, parts); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d repuestos\n", outPath, len(parts))
}

func upsertParts(parts []entity.Part) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return err
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool, logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})); err != nil {
		return err
	}
	repo := postgres.NewPartRepository(pool)
	for i := range parts {
		if err := repo.Upsert(ctx, &parts[i]); err != nil {
			return fmt.Errorf("%s: %w", parts[i].PartNo, err)
		}
	}
	return nil
}

func findModuleRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return dir
		}
		dir = parent
	}
}

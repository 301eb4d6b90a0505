package pos

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"restaurant-pos/internal/common/auth"
	"restaurant-pos/internal/connections/database"
	"restaurant-pos/internal/domain"
)

type seedStaff struct {
	name, email, password string
	role                  domain.Role
}

type seedProduct struct {
	name     string
	price    int64
	category string
	station  domain.Station
}

var demoStaff = []seedStaff{
	{"Admin General", "admin@buensabor.com", "admin123", domain.RoleAdmin},
	{"Juan Garzón", "garzon@buensabor.com", "garzon123", domain.RoleWaiter},
	{"Jefe Cocina", "cocina@buensabor.com", "cocina123", domain.RoleKitchen},
}

var demoMenu = []seedProduct{
	{"Empanada de Pino", 2500, "entrada", "hot_kitchen"},
	{"Sopaipillas con Pebre (4 un)", 3500, "entrada", "hot_kitchen"},
	{"Palta Reina", 4800, "entrada", "cold_kitchen"},
	{"Machas a la Parmesana", 8900, "entrada", "hot_kitchen"},
	{"Arrollado Huaso", 5500, "entrada", "cold_kitchen"},

	{"Pastel de Choclo", 8500, "plato_fondo", "hot_kitchen"},
	{"Cazuela de Vacuno", 7900, "plato_fondo", "hot_kitchen"},
	{"Lomo a lo Pobre", 11500, "plato_fondo", "hot_kitchen"},
	{"Charquicán con Huevo", 6900, "plato_fondo", "hot_kitchen"},
	{"Porotos con Riendas", 6500, "plato_fondo", "hot_kitchen"},
	{"Costillar con Puré Picante", 9800, "plato_fondo", "hot_kitchen"},
	{"Paila Marina", 9500, "plato_fondo", "hot_kitchen"},
	{"Merluza Frita con Chilena", 7800, "plato_fondo", "hot_kitchen"},
	{"Chorrillana (Para 2)", 13500, "plato_fondo", "hot_kitchen"},
	{"Plateada al Jugo c/ Agregado", 10500, "plato_fondo", "hot_kitchen"},

	{"Mote con Huesillo", 2500, "postre", "dessert"},
	{"Leche Asada", 3200, "postre", "dessert"},
	{"Sémola con Leche", 2800, "postre", "dessert"},
	{"Alfajor Chileno", 1500, "postre", "dessert"},
	{"Panqueque Celestino", 3800, "postre", "dessert"},

	{"Coca-cola 350cc", 4500, "bebida", domain.StationBar},
	{"Fanta 350cc", 4000, "bebida", domain.StationBar},
	{"Sprite 350cc", 4000, "bebida", domain.StationBar},
	{"Jugo Natural Frambuesa", 3500, "bebida", domain.StationBar},
	{"Jugo Natural Piña", 2000, "bebida", domain.StationBar},
}

const demoTables = 60

// SeedResult counts the rows a Seed call actually inserted.
type SeedResult struct {
	Staff, Tables, Products int64
}

// Seed inserts demo staff, tables M-1..M-60 and a menu. Existing rows are
// left untouched, so running it twice is harmless.
func Seed(ctx context.Context, pool *pgxpool.Pool) (SeedResult, error) {
	var res SeedResult

	hashes := make([]string, len(demoStaff))
	for i, s := range demoStaff {
		h, err := auth.HashPassword(s.password)
		if err != nil {
			return res, fmt.Errorf("failed to hash password for %s: %w", s.email, err)
		}
		hashes[i] = h
	}

	err := database.InTx(ctx, pool, func(tx pgx.Tx) error {
		for i, s := range demoStaff {
			tag, err := tx.Exec(ctx, `
				INSERT INTO staff (name, email, password_hash, role) VALUES ($1, $2, $3, $4)
				ON CONFLICT (email) DO NOTHING`, s.name, s.email, hashes[i], string(s.role))
			if err != nil {
				return fmt.Errorf("failed to seed staff %s: %w", s.email, err)
			}
			res.Staff += tag.RowsAffected()
		}

		for i := 1; i <= demoTables; i++ {
			tag, err := tx.Exec(ctx, `
				INSERT INTO dining_tables (label, seat_capacity) VALUES ($1, $2)
				ON CONFLICT (label) DO NOTHING`, fmt.Sprintf("M-%d", i), seatsFor(i))
			if err != nil {
				return fmt.Errorf("failed to seed table %d: %w", i, err)
			}
			res.Tables += tag.RowsAffected()
		}

		for _, p := range demoMenu {
			tag, err := tx.Exec(ctx, `
				INSERT INTO products (name, unit_price, category, station) VALUES ($1, $2, $3, $4)
				ON CONFLICT (name) DO NOTHING`, p.name, p.price, p.category, string(p.station))
			if err != nil {
				return fmt.Errorf("failed to seed product %s: %w", p.name, err)
			}
			res.Products += tag.RowsAffected()
		}
		return nil
	})
	return res, err
}

func seatsFor(n int) int {
	switch {
	case n <= 10:
		return 2
	case n <= 40:
		return 4
	default:
		return 6
	}
}

package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type seedSousService struct {
	name  string
	label string
}

type seedCategory struct {
	name         string
	label        string
	sousServices []seedSousService
}

type seedMetier struct {
	name       string
	label      string
	categories []seedCategory
}

// taxonomy is the static trade catalogue. Seeding is idempotent: rows are
// upserted by name so re-running the seed binary is safe.
var taxonomy = []seedMetier{
	{
		name: "menuiserie", label: "Menuiserie",
		categories: []seedCategory{
			{name: "agencement", label: "Agencement", sousServices: []seedSousService{
				{"pose_porte", "Pose de porte"},
				{"pose_fenetre", "Pose de fenetre"},
				{"dressing_sur_mesure", "Dressing sur mesure"},
			}},
			{name: "mobilier", label: "Mobilier", sousServices: []seedSousService{
				{"fabrication_meuble", "Fabrication de meuble"},
				{"restauration_meuble", "Restauration de meuble"},
			}},
			{name: "parquet", label: "Parquet", sousServices: []seedSousService{
				{"pose_parquet", "Pose de parquet"},
				{"poncage_parquet", "Poncage de parquet"},
			}},
		},
	},
	{
		name: "electricite", label: "Electricite",
		categories: []seedCategory{
			{name: "installation", label: "Installation", sousServices: []seedSousService{
				{"tableau_electrique", "Tableau electrique"},
				{"prises_interrupteurs", "Prises et interrupteurs"},
				{"eclairage", "Eclairage"},
			}},
			{name: "depannage", label: "Depannage", sousServices: []seedSousService{
				{"panne_electrique", "Panne electrique"},
				{"mise_aux_normes", "Mise aux normes"},
			}},
		},
	},
	{
		name: "peinture", label: "Peinture",
		categories: []seedCategory{
			{name: "interieur", label: "Interieur", sousServices: []seedSousService{
				{"peinture_murs", "Peinture des murs"},
				{"peinture_plafonds", "Peinture des plafonds"},
				{"papier_peint", "Pose de papier peint"},
			}},
			{name: "exterieur", label: "Exterieur", sousServices: []seedSousService{
				{"peinture_facade", "Peinture de facade"},
				{"peinture_boiseries", "Peinture des boiseries"},
			}},
		},
	},
}

// SeedTaxonomy inserts the three trades with their categories and
// sub-services.
func SeedTaxonomy() error {
	for _, m := range taxonomy {
		var metierID uuid.UUID
		err := DB.QueryRow(
			`INSERT INTO metiers (id, name, label) VALUES ($1, $2, $3)
			 ON CONFLICT (name) DO UPDATE SET label = EXCLUDED.label
			 RETURNING id`,
			uuid.New(), m.name, m.label,
		).Scan(&metierID)
		if err != nil {
			return fmt.Errorf("seed metier %s: %w", m.name, err)
		}

		for _, cat := range m.categories {
			var categoryID uuid.UUID
			err := DB.QueryRow(
				`INSERT INTO categories (id, metier_id, name, label) VALUES ($1, $2, $3, $4)
				 ON CONFLICT (metier_id, name) DO UPDATE SET label = EXCLUDED.label
				 RETURNING id`,
				uuid.New(), metierID, cat.name, cat.label,
			).Scan(&categoryID)
			if err != nil {
				return fmt.Errorf("seed category %s: %w", cat.name, err)
			}

			for _, ss := range cat.sousServices {
				_, err := DB.Exec(
					`INSERT INTO sous_services (id, category_id, name, label) VALUES ($1, $2, $3, $4)
					 ON CONFLICT (category_id, name) DO UPDATE SET label = EXCLUDED.label`,
					uuid.New(), categoryID, ss.name, ss.label,
				)
				if err != nil {
					return fmt.Errorf("seed sous-service %s: %w", ss.name, err)
				}
			}
		}
	}
	return nil
}

// SeedAdmin creates the back-office account if it does not exist.
func SeedAdmin(email, password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = DB.Exec(
		`INSERT INTO users (uid, username, email, password_hash, user_role, verified, created_at, updated_at)
		 VALUES ($1, 'admin', $2, $3, 'admin', TRUE, $4, $4)
		 ON CONFLICT (email) DO NOTHING`,
		uuid.New(), email, string(hashed), now,
	)
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

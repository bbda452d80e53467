package attemptdb

import (
	"context"
	"log"

	"github.com/uptrace/bun"

	"github.com/edverify/sheerid-verifier/pkg/attemptstore"
	mghelper "github.com/edverify/sheerid-verifier/pkg/pgutil/migrations"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		log.Println("creating attempts table...")
		if err := mghelper.CreateSchema(ctx, db, &attemptstore.AttemptDao{}); err != nil {
			return err
		}
		// Create indexes
		return mghelper.CreateModelIndexes(ctx, db, &attemptstore.AttemptDao{}, "verification_id", "status")
	}, func(ctx context.Context, db *bun.DB) error {
		log.Println("dropping attempts table...")
		return mghelper.DropTables(ctx, db, &attemptstore.AttemptDao{})
	})
}

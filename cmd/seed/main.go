// Command seed populates the roster and monthly targets for local
// development. Rep administration is out of band for the dashboard itself,
// so it lives here rather than behind an API endpoint.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"example.com/salesdash/internal/config"
	"example.com/salesdash/internal/dates"
	"example.com/salesdash/internal/domain"
	persistence "example.com/salesdash/internal/persistence/postgres"
)

type seedRep struct {
	name      string
	team      domain.Team
	subTeam   domain.SubTeam
	tqrTarget float64
	nlTarget  *float64
}

func nl(v float64) *float64 { return &v }

var roster = []seedRep{
	{"Avery Collins", domain.TeamExpansion, domain.SubTeamLucy, 120000, nil},
	{"Jordan Blake", domain.TeamExpansion, domain.SubTeamLucy, 95000, nil},
	{"Sam Whitfield", domain.TeamExpansion, domain.SubTeamRyan, 110000, nil},
	{"Casey Morgan", domain.TeamExpansion, domain.SubTeamRyan, 87500, nil},
	{"Riley Chen", domain.TeamNewLogo, domain.SubTeamJustin, 60000, nl(6)},
	{"Drew Santos", domain.TeamNewLogo, domain.SubTeamJustin, 55000, nl(5)},
	{"Morgan Patel", domain.TeamNewLogo, domain.SubTeamKyra, 70000, nl(8)},
	{"Taylor Nguyen", domain.TeamNewLogo, domain.SubTeamKyra, 48000, nl(4)},
}

func main() {
	month := flag.String("month", dates.MonthKey(time.Now()), "month key (YYYY-MM) to seed targets for")
	flag.Parse()

	if !dates.IsMonthKey(*month) {
		log.Fatalf("invalid month key %q", *month)
	}

	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	repo := persistence.NewRepository(pool)

	for _, entry := range roster {
		rep := domain.Rep{
			ID:      uuid.NewString(),
			Name:    entry.name,
			Team:    entry.team,
			SubTeam: entry.subTeam,
			Active:  true,
		}
		if err := repo.InsertRep(ctx, rep); err != nil {
			log.Fatalf("failed to seed rep %s: %v", entry.name, err)
		}
		if err := repo.UpsertTarget(ctx, domain.MonthlyTarget{
			RepID:     rep.ID,
			Month:     *month,
			TQRTarget: entry.tqrTarget,
			NLTarget:  entry.nlTarget,
		}); err != nil {
			log.Fatalf("failed to seed target for %s: %v", entry.name, err)
		}
	}

	log.Printf("seeded %d reps with targets for %s", len(roster), *month)
}

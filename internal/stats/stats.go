package stats

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

// Store reads player statistics from the CRCON Postgres database.
// The bot never writes to it
type Store struct {
	db *sql.DB
}

func Open(dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening stats database: %w", err)
	}
	db.SetMaxOpenConns(4)
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// PlayerMatch is one search hit: a player id with its latest known name
type PlayerMatch struct {
	SteamID int64
	Name    string
}

// SearchPlayers finds players whose latest name starts with prefix,
// most recently seen first
func (s *Store) SearchPlayers(ctx context.Context, prefix string) ([]PlayerMatch, error) {

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, playersteamid_id
		FROM (
			SELECT DISTINCT ON (pn.playersteamid_id)
				pn.playersteamid_id,
				pn.name,
				pn.last_seen
			FROM player_names pn
			WHERE pn.name ILIKE $1
			ORDER BY pn.playersteamid_id, pn.last_seen DESC
		) sub
		ORDER BY sub.last_seen DESC
		LIMIT 20
	`, prefix+"%")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []PlayerMatch
	for rows.Next() {
		var m PlayerMatch
		if err := rows.Scan(&m.Name, &m.SteamID); err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

type AllTimeStats struct {
	Matches    int
	Kills      int
	Deaths     int
	BestStreak int
	AvgKDR     float64
	Seconds    int64
}

// AllTime aggregates every recorded match of a player
func (s *Store) AllTime(ctx context.Context, steamID int64) (AllTimeStats, error) {

	var (
		matches    sql.NullInt64
		kills      sql.NullInt64
		deaths     sql.NullInt64
		bestStreak sql.NullInt64
		avgKDR     sql.NullFloat64
		seconds    sql.NullInt64
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*) AS matches_played,
			SUM(kills) AS total_kills,
			SUM(deaths) AS total_deaths,
			MAX(kills_streak) AS best_kill_streak,
			AVG(kill_death_ratio) AS avg_kdr,
			SUM(time_seconds) AS total_time_seconds
		FROM player_stats
		WHERE playersteamid_id = $1
	`, steamID).Scan(&matches, &kills, &deaths, &bestStreak, &avgKDR, &seconds)
	if err != nil {
		return AllTimeStats{}, err
	}

	return AllTimeStats{
		Matches:    int(matches.Int64),
		Kills:      int(kills.Int64),
		Deaths:     int(deaths.Int64),
		BestStreak: int(bestStreak.Int64),
		AvgKDR:     avgKDR.Float64,
		Seconds:    seconds.Int64,
	}, nil
}

type MonthlyStats struct {
	Month      string // "YYYY-MM"
	Matches    int
	Kills      int
	Deaths     int
	BestStreak int
	AvgKDR     float64
	Seconds    int64
}

// Monthly aggregates the last 6 calendar months a player appeared in,
// newest month first
func (s *Store) Monthly(ctx context.Context, steamID int64) ([]MonthlyStats, error) {

	rows, err := s.db.QueryContext(ctx, `
		SELECT
			TO_CHAR(m.start, 'YYYY-MM') AS month,
			COUNT(*) AS matches,
			SUM(kills) AS kills,
			SUM(deaths) AS deaths,
			MAX(kills_streak) AS best_kill_streak,
			AVG(kill_death_ratio) AS avg_kdr,
			SUM(time_seconds) AS time_seconds
		FROM player_stats ps
		JOIN map_history m ON ps.map_id = m.id
		WHERE ps.playersteamid_id = $1
		GROUP BY month
		ORDER BY month DESC
		LIMIT 6
	`, steamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var months []MonthlyStats
	for rows.Next() {
		var (
			ms         MonthlyStats
			kills      sql.NullInt64
			deaths     sql.NullInt64
			bestStreak sql.NullInt64
			avgKDR     sql.NullFloat64
			seconds    sql.NullInt64
		)
		if err := rows.Scan(&ms.Month, &ms.Matches, &kills, &deaths, &bestStreak, &avgKDR, &seconds); err != nil {
			return nil, err
		}
		ms.Kills = int(kills.Int64)
		ms.Deaths = int(deaths.Int64)
		ms.BestStreak = int(bestStreak.Int64)
		ms.AvgKDR = avgKDR.Float64
		ms.Seconds = seconds.Int64
		months = append(months, ms)
	}
	return months, rows.Err()
}

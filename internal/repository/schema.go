package repository

import "github.com/jmoiron/sqlx"

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id              TEXT PRIMARY KEY,
	username        TEXT UNIQUE NOT NULL,
	token           TEXT UNIQUE NOT NULL,
	stars           INT NOT NULL DEFAULT 0,
	gold            INT NOT NULL DEFAULT 0,
	rank            TEXT NOT NULL DEFAULT 'Bronze',
	last_active_day TEXT,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS quests (
	quest_id        UUID PRIMARY KEY,
	user_id         TEXT NOT NULL REFERENCES users (id),
	slot            INT NOT NULL,
	quest_type      TEXT NOT NULL,
	template_id     TEXT NOT NULL,
	title_key       TEXT NOT NULL,
	description_key TEXT NOT NULL,
	emoji           TEXT NOT NULL,
	gold_reward     INT NOT NULL,
	completed       BOOLEAN NOT NULL DEFAULT FALSE,
	completed_at    TIMESTAMPTZ,
	rerolled        BOOLEAN NOT NULL DEFAULT FALSE,
	week_year       TEXT NOT NULL,
	day             TEXT NOT NULL,
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS quests_user_week_idx ON quests (user_id, week_year);
CREATE INDEX IF NOT EXISTS quests_user_day_idx ON quests (user_id, day);

CREATE TABLE IF NOT EXISTS weekly_tracking (
	user_id      TEXT NOT NULL REFERENCES users (id),
	week_year    TEXT NOT NULL,
	star_awarded BOOLEAN NOT NULL DEFAULT FALSE,
	awarded_at   TIMESTAMPTZ,
	PRIMARY KEY (user_id, week_year)
);

CREATE TABLE IF NOT EXISTS feedback (
	feedback_id UUID PRIMARY KEY,
	user_id     TEXT NOT NULL REFERENCES users (id),
	username    TEXT NOT NULL,
	message     TEXT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

func initSchema(db *sqlx.DB) error {
	_, err := db.Exec(schema)
	return err
}

package store

const schemaSQL = `
CREATE TABLE IF NOT EXISTS kv (
    key                  TEXT PRIMARY KEY,
    value                TEXT NOT NULL,
    updated_at           TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS plan_runs (
    id                   INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at           TEXT NOT NULL,
    strategy             TEXT NOT NULL,
    contribution         TEXT NOT NULL,
    loans                INTEGER NOT NULL,
    months               INTEGER NOT NULL,
    total_paid           TEXT NOT NULL,
    interest             TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_plan_runs_created ON plan_runs(created_at);
`

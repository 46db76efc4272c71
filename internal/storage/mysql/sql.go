package mysql

const insertFailureSQL = `
INSERT INTO api_failures (op, kind, http_status, message, place_id, seen_at)
VALUES (?, ?, ?, ?, ?, ?)
`

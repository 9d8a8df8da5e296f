package user

const (
	columns = `id, username, email, password_hash, profile_id, created_at, updated_at`

	SelectUsers = `
		SELECT ` + columns + `
		FROM users
		ORDER BY created_at, id
	`
	SelectUserByID = `
		SELECT ` + columns + `
		FROM users
		WHERE id = $1
	`
	SelectUserByUsername = `
		SELECT ` + columns + `
		FROM users
		WHERE username = $1
	`
	UpsertUser = `
		INSERT INTO users (id, username, email, password_hash, profile_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (id) DO UPDATE
		SET username = EXCLUDED.username,
		    email = EXCLUDED.email,
		    password_hash = EXCLUDED.password_hash,
		    profile_id = EXCLUDED.profile_id,
		    updated_at = EXCLUDED.updated_at
		RETURNING ` + columns
	ExistsByEmail    = `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`
	ExistsByUsername = `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`
	DeleteUserByID   = `DELETE FROM users WHERE id = $1`

	emailConstraint    = "users_email_key"
	usernameConstraint = "users_username_key"
)

package user_status

const (
	columns = `id, user_id, last_active_at, created_at, updated_at`

	SelectUserStatuses = `
		SELECT ` + columns + `
		FROM user_statuses
		ORDER BY created_at, id
	`
	SelectUserStatusByID = `
		SELECT ` + columns + `
		FROM user_statuses
		WHERE id = $1
	`
	SelectUserStatusByUserID = `
		SELECT ` + columns + `
		FROM user_statuses
		WHERE user_id = $1
	`
	UpsertUserStatus = `
		INSERT INTO user_statuses (id, user_id, last_active_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET last_active_at = EXCLUDED.last_active_at,
		    updated_at = EXCLUDED.updated_at
		RETURNING ` + columns
	DeleteUserStatusByID     = `DELETE FROM user_statuses WHERE id = $1`
	DeleteUserStatusByUserID = `DELETE FROM user_statuses WHERE user_id = $1`

	userIDConstraint = "user_statuses_user_id_key"
)

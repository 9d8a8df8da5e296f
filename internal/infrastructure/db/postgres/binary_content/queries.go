package binary_content

const (
	columns = `id, file_name, size_bytes, content_type, bucket, storage_key, created_at`

	InsertBinaryContent = `
		INSERT INTO binary_contents (id, file_name, size_bytes, content_type, bucket, storage_key, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + columns
	SelectBinaryContentByID = `
		SELECT ` + columns + `
		FROM binary_contents
		WHERE id = $1
	`
	SelectBinaryContentsByIDs = `
		SELECT ` + columns + `
		FROM binary_contents
		WHERE id = ANY($1)
		ORDER BY created_at, id
	`
	ExistsBinaryContentByID = `SELECT EXISTS (SELECT 1 FROM binary_contents WHERE id = $1)`
	DeleteBinaryContentByID = `DELETE FROM binary_contents WHERE id = $1`
)

package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"time"
)

// CV attachments live in their own table as opaque blobs. The key is the
// content hash, so re-uploading the same file is a no-op and an Interview's
// cv_reference stays a plain string. Content type and size policy belong to
// the upload handler; the store keeps whatever it is given.

// AttachmentKey derives the stable key for a blob.
func AttachmentKey(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// PutAttachment stores the blob and returns its key. Storing the same
// bytes twice returns the same key and rewrites the row.
func (d *DB) PutAttachment(ctx context.Context, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("%w: attachment is empty", ErrValidation)
	}
	key := AttachmentKey(data)
	_, err := d.Pool.ExecContext(ctx, `
INSERT OR REPLACE INTO attachments(key, content_type, bytes, size, uploaded_at)
VALUES(?,?,?,?,?);`,
		key, contentType, data, len(data), time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("put attachment: %w", err)
	}
	return key, nil
}

// GetAttachment returns the blob and its recorded content type.
func (d *DB) GetAttachment(ctx context.Context, key string) (contentType string, data []byte, err error) {
	err = d.Pool.QueryRowContext(ctx, `
SELECT content_type, bytes FROM attachments WHERE key = ? LIMIT 1;`, key).Scan(&contentType, &data)
	if err == sql.ErrNoRows {
		return "", nil, fmt.Errorf("%w: attachment %s", ErrNotFound, key)
	}
	if err != nil {
		return "", nil, fmt.Errorf("get attachment: %w", err)
	}
	return contentType, data, nil
}

func (d *DB) DeleteAttachment(ctx context.Context, key string) error {
	res, err := d.Pool.ExecContext(ctx, `DELETE FROM attachments WHERE key = ?;`, key)
	if err != nil {
		return fmt.Errorf("delete attachment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: attachment %s", ErrNotFound, key)
	}
	return nil
}

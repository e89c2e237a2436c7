package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/tetoy/tetoy-api/internal/domain/entity"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo implementación del puerto ActivityLogRepository sobre PostgreSQL.
// La tabla es append-only: nunca UPDATE ni DELETE.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador de la bitácora. Pasar pool o tx (Querier).
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

// Append inserta la entrada. Seq lo asigna la secuencia de la tabla y desempata
// el orden entre entradas con el mismo timestamp.
func (r *ActivityLogRepo) Append(log *entity.ActivityLog) error {
	query := `
		INSERT INTO activity_logs (id, storage_id, user_id, action, message, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING seq`
	err := r.q.QueryRow(context.Background(), query,
		log.ID, log.StorageID, log.UserID, log.Action, log.Message, log.Timestamp,
	).Scan(&log.Seq)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

// ListByStorage devuelve entradas anteriores a `before`, más recientes primero,
// con seq descendente como desempate y el usuario que las generó resuelto.
func (r *ActivityLogRepo) ListByStorage(storageID string, before time.Time, limit int) ([]*entity.ActivityLogEntry, error) {
	query := `
		SELECT l.id, l.seq, l.storage_id, l.user_id, l.action, l.message, l.timestamp,
		       u.display_name, u.avatar_url
		FROM activity_logs l
		LEFT JOIN users u ON u.id = l.user_id
		WHERE l.storage_id = $1 AND l.timestamp < $2
		ORDER BY l.timestamp DESC, l.seq DESC
		LIMIT $3`
	rows, err := r.q.Query(context.Background(), query, storageID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var list []*entity.ActivityLogEntry
	for rows.Next() {
		var e entity.ActivityLogEntry
		if err := rows.Scan(
			&e.ID, &e.Seq, &e.StorageID, &e.UserID, &e.Action, &e.Message, &e.Timestamp,
			&e.UserDisplayName, &e.UserAvatarURL,
		); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

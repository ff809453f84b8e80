package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-net-storage/internal/config"
	"github.com/MKhiriev/go-net-storage/models"
)

var (
	userColumns    = []string{"id", "username", "display_name", "custom_id_hash", "create_time"}
	storageColumns = []string{
		"collection", "object_key", "user_id", "value", "version",
		"permission_read", "permission_write", "create_time", "update_time",
	}
)

// upsertObjectSuffix works for both PostgreSQL and SQLite (3.24+).
// create_time is kept from the first insert.
const upsertObjectSuffix = `ON CONFLICT (collection, object_key, user_id) DO UPDATE SET
	value = excluded.value,
	version = excluded.version,
	permission_read = excluded.permission_read,
	permission_write = excluded.permission_write,
	update_time = excluded.update_time`

func (db *DB) insertUserQuery(user models.User) (string, []any, error) {
	return db.builder.
		Insert(user.TableName()).
		Columns(userColumns...).
		Values(user.ID, user.Username, user.DisplayName, user.CustomIDHash, user.CreateTime).
		ToSql()
}

func (db *DB) selectUsersQuery(where sq.Sqlizer) (string, []any, error) {
	return db.builder.
		Select(userColumns...).
		From(models.User{}.TableName()).
		Where(where).
		OrderBy("create_time", "id").
		ToSql()
}

// findUsersWhere matches users by id or by username. Empty lists are left
// out of the condition.
func findUsersWhere(ids, usernames []string) sq.Sqlizer {
	or := sq.Or{}
	if len(ids) > 0 {
		or = append(or, sq.Eq{"id": ids})
	}
	if len(usernames) > 0 {
		or = append(or, sq.Eq{"username": usernames})
	}
	return or
}

func (db *DB) updateUserQuery(id string, update models.UpdateAccountRequest) (string, []any, error) {
	set := map[string]any{}
	if update.Username != "" {
		set["username"] = update.Username
	}
	if update.DisplayName != "" {
		set["display_name"] = update.DisplayName
	}
	if len(set) == 0 {
		return "", nil, fmt.Errorf("%w: nothing to update", ErrBuildingSQLQuery)
	}

	return db.builder.
		Update(models.User{}.TableName()).
		SetMap(set).
		Where(sq.Eq{"id": id}).
		ToSql()
}

func (db *DB) selectObjectsQuery(ids []models.StorageObjectID) (string, []any, error) {
	or := make(sq.Or, 0, len(ids))
	for _, id := range ids {
		or = append(or, sq.Eq{
			"collection": id.Collection,
			"object_key": id.Key,
			"user_id":    id.UserID,
		})
	}

	return db.builder.
		Select(storageColumns...).
		From(models.StorageObject{}.TableName()).
		Where(or).
		OrderBy("collection", "object_key", "user_id").
		ToSql()
}

// selectObjectVersionQuery reads the state a write precondition is checked
// against. PostgreSQL locks the row until the transaction ends; SQLite already
// holds the database write lock.
func (db *DB) selectObjectVersionQuery(addr models.StorageAddress) (string, []any, error) {
	query := db.builder.
		Select("version", "permission_write").
		From(models.StorageObject{}.TableName()).
		Where(sq.Eq{
			"collection": addr.Collection,
			"object_key": addr.Key,
			"user_id":    addr.UserID,
		})
	if db.driver == config.DriverPostgres {
		query = query.Suffix("FOR UPDATE")
	}

	return query.ToSql()
}

func (db *DB) upsertObjectQuery(obj models.StorageObject) (string, []any, error) {
	return db.builder.
		Insert(obj.TableName()).
		Columns(storageColumns...).
		Values(
			obj.Collection, obj.Key, obj.UserID, obj.Value, obj.Version,
			obj.PermissionRead, obj.PermissionWrite, obj.CreateTime, obj.UpdateTime,
		).
		Suffix(upsertObjectSuffix).
		ToSql()
}

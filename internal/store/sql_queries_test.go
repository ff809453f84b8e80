// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"
	"time"

	"github.com/MKhiriev/go-net-storage/internal/config"
	"github.com/MKhiriev/go-net-storage/internal/logger"
	"github.com/MKhiriev/go-net-storage/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDB(driver string) *DB {
	return newDB(nil, driver, logger.Nop())
}

func Test_insertUserQuery(t *testing.T) {
	now := time.Now()
	user := models.User{ID: "u1", Username: "alice", CustomIDHash: "hash", CreateTime: now}

	query, args, err := testDB(config.DriverPostgres).insertUserQuery(user)
	require.NoError(t, err)

	assert.Equal(t, "INSERT INTO users (id,username,display_name,custom_id_hash,create_time) VALUES ($1,$2,$3,$4,$5)", query)
	assert.Equal(t, []any{"u1", "alice", "", "hash", now}, args)
}

func Test_selectUsersQuery_Placeholders(t *testing.T) {
	where := findUsersWhere([]string{"u1", "u2"}, []string{"bob"})

	pgQuery, pgArgs, err := testDB(config.DriverPostgres).selectUsersQuery(where)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, username, display_name, custom_id_hash, create_time FROM users WHERE (id IN ($1,$2) OR username IN ($3)) ORDER BY create_time, id",
		pgQuery)
	assert.Equal(t, []any{"u1", "u2", "bob"}, pgArgs)

	liteQuery, _, err := testDB(config.DriverSQLite).selectUsersQuery(where)
	require.NoError(t, err)
	assert.Contains(t, liteQuery, "id IN (?,?) OR username IN (?)")
	assert.NotContains(t, liteQuery, "$1")
}

func Test_findUsersWhere_OnlyUsernames(t *testing.T) {
	query, args, err := testDB(config.DriverSQLite).selectUsersQuery(findUsersWhere(nil, []string{"bob"}))
	require.NoError(t, err)

	assert.Contains(t, query, "WHERE (username IN (?))")
	assert.NotContains(t, query, "id IN")
	assert.Equal(t, []any{"bob"}, args)
}

func Test_updateUserQuery(t *testing.T) {
	db := testDB(config.DriverPostgres)

	query, args, err := db.updateUserQuery("u1", models.UpdateAccountRequest{DisplayName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET display_name = $1 WHERE id = $2", query)
	assert.Equal(t, []any{"Alice", "u1"}, args)

	query, args, err = db.updateUserQuery("u1", models.UpdateAccountRequest{Username: "al", DisplayName: "Alice"})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE users SET display_name = $1, username = $2 WHERE id = $3", query)
	assert.Equal(t, []any{"Alice", "al", "u1"}, args)

	_, _, err = db.updateUserQuery("u1", models.UpdateAccountRequest{})
	assert.ErrorIs(t, err, ErrBuildingSQLQuery)
}

func Test_selectObjectsQuery(t *testing.T) {
	ids := []models.StorageObjectID{
		{StorageAddress: models.StorageAddress{Collection: "profiles", Key: "p1", UserID: "u1"}},
		{StorageAddress: models.StorageAddress{Collection: "profiles", Key: "p1", UserID: "u2"}},
	}

	query, args, err := testDB(config.DriverSQLite).selectObjectsQuery(ids)
	require.NoError(t, err)

	q := strings.ToLower(query)
	assert.Contains(t, q, "from storage")
	assert.Equal(t, 2, strings.Count(q, "collection = ? and object_key = ? and user_id = ?"))
	assert.Equal(t, []any{"profiles", "p1", "u1", "profiles", "p1", "u2"}, args)
}

func Test_selectObjectVersionQuery_LocksOnPostgres(t *testing.T) {
	addr := models.StorageAddress{Collection: "profiles", Key: "p1", UserID: "u1"}

	pgQuery, _, err := testDB(config.DriverPostgres).selectObjectVersionQuery(addr)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(pgQuery, "FOR UPDATE"))

	liteQuery, args, err := testDB(config.DriverSQLite).selectObjectVersionQuery(addr)
	require.NoError(t, err)
	assert.NotContains(t, liteQuery, "FOR UPDATE")
	assert.Equal(t, []any{"profiles", "p1", "u1"}, args)
}

func Test_upsertObjectQuery(t *testing.T) {
	now := time.Now()
	obj := models.StorageObject{
		StorageAddress:  models.StorageAddress{Collection: "profiles", Key: "p1", UserID: "u1"},
		Value:           `{"score":1}`,
		Version:         "v1",
		PermissionRead:  models.PermissionPublicRead,
		PermissionWrite: models.PermissionOwnerWrite,
		CreateTime:      now,
		UpdateTime:      now,
	}

	query, args, err := testDB(config.DriverPostgres).upsertObjectQuery(obj)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(query, "INSERT INTO storage (collection,object_key,user_id,value,version,permission_read,permission_write,create_time,update_time) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9) ON CONFLICT"))
	assert.Contains(t, query, "version = excluded.version")
	assert.NotContains(t, query, "create_time = excluded")
	assert.Len(t, args, 9)
}

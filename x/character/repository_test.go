package character

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/rs/xid"
	"github.com/stretchr/testify/assert"

	"github.com/totegamma/purse/core"
	"github.com/totegamma/purse/internal/testutil"
)

func TestRepository(t *testing.T) {

	var ctx = context.Background()

	db, cleanup_db := testutil.CreateDB()
	defer cleanup_db()

	rdb, cleanup_rdb := testutil.CreateRDB()
	defer cleanup_rdb()

	mc, cleanup_mc := testutil.CreateMC()
	defer cleanup_mc()

	repo := NewRepository(db, rdb, mc)

	count, err := repo.Count(ctx)
	if assert.NoError(t, err) {
		assert.Equal(t, int64(0), count)
	}

	// :: 作成順と逆順に並ぶこと ::
	pivot := time.Now().Truncate(time.Microsecond)
	var created []core.Character
	for i, name := range []string{"A", "B", "C"} {
		c, err := repo.Create(ctx, core.Character{
			ID:        xid.New().String(),
			Name:      name,
			Currency:  core.Currency{Gold: int64(i)},
			CreatedAt: pivot.Add(time.Duration(i) * time.Second),
		})
		if assert.NoError(t, err) {
			created = append(created, c)
		}
	}

	list, err := repo.List(ctx)
	if assert.NoError(t, err) && assert.Len(t, list, 3) {
		assert.Equal(t, "C", list[0].Name)
		assert.Equal(t, "B", list[1].Name)
		assert.Equal(t, "A", list[2].Name)
	}

	count, err = repo.Count(ctx)
	if assert.NoError(t, err) {
		assert.Equal(t, int64(3), count)
	}

	// :: 部分更新 ::
	target := created[0]
	target.Currency.Silver = 7
	updated, err := repo.Update(ctx, target)
	if assert.NoError(t, err) {
		assert.Equal(t, int64(7), updated.Currency.Silver)
	}

	found, err := repo.Get(ctx, target.ID)
	if assert.NoError(t, err) {
		assert.Equal(t, "A", found.Name)
		assert.Equal(t, core.Currency{Silver: 7}, found.Currency)
		assert.True(t, pivot.Equal(found.CreatedAt))
	}

	// :: 削除 ::
	err = repo.Delete(ctx, target.ID)
	assert.NoError(t, err)

	_, err = repo.Get(ctx, target.ID)
	assert.ErrorIs(t, err, core.ErrorNotFound{})

	err = repo.Delete(ctx, target.ID)
	assert.ErrorIs(t, err, core.ErrorNotFound{})

	// :: イベント ::
	pubsub := rdb.Subscribe(ctx, core.CharacterEventChannel)
	defer pubsub.Close()
	_, err = pubsub.Receive(ctx)
	assert.NoError(t, err)

	err = repo.PublishEvent(ctx, core.CharacterEvent{Type: core.EventDeleted, ID: target.ID})
	assert.NoError(t, err)

	msg, err := pubsub.ReceiveMessage(ctx)
	if assert.NoError(t, err) {
		var event core.CharacterEvent
		assert.NoError(t, json.Unmarshal([]byte(msg.Payload), &event))
		assert.Equal(t, core.EventDeleted, event.Type)
		assert.Equal(t, target.ID, event.ID)
	}

	err = repo.Clean(ctx)
	assert.NoError(t, err)

	list, err = repo.List(ctx)
	if assert.NoError(t, err) {
		assert.Empty(t, list)
		assert.NotNil(t, list)
	}
}

func TestEndToEnd(t *testing.T) {

	db, cleanup_db := testutil.CreateDB()
	defer cleanup_db()

	rdb, cleanup_rdb := testutil.CreateRDB()
	defer cleanup_rdb()

	mc, cleanup_mc := testutil.CreateMC()
	defer cleanup_mc()

	e := setupEcho(NewService(NewRepository(db, rdb, mc)))

	rec := doRequest(e, http.MethodPost, "/api/characters", `{"name": "Aragorn"}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var aragorn core.Character
	if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &aragorn)) {
		assert.Equal(t, core.Currency{}, aragorn.Currency)
	}

	rec = doRequest(e, http.MethodPost, "/api/characters", `{"name": ""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, core.MessageNameRequired, message(t, rec))

	rec = doRequest(e, http.MethodPost, "/api/characters", `{"name": "Gimli", "currency": {"gold": 40, "silver": 50, "copper": 120}}`)
	assert.Equal(t, http.StatusCreated, rec.Code)
	var gimli core.Character
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &gimli))
	assert.NotEmpty(t, gimli.ID)

	rec = doRequest(e, http.MethodGet, "/api/characters/"+gimli.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var fetched core.Character
	if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &fetched)) {
		assert.Equal(t, "Gimli", fetched.Name)
		assert.Equal(t, core.Currency{Gold: 40, Silver: 50, Copper: 120}, fetched.Currency)
		assert.True(t, gimli.CreatedAt.Equal(fetched.CreatedAt))
	}

	rec = doRequest(e, http.MethodPatch, "/api/characters/"+gimli.ID, `{"currency": {"silver": 0}}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	var patched core.Character
	if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &patched)) {
		assert.Equal(t, core.Currency{Gold: 40, Silver: 0, Copper: 120}, patched.Currency)
	}

	rec = doRequest(e, http.MethodGet, "/api/characters", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	var list []core.Character
	if assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list)) && assert.Len(t, list, 2) {
		assert.Equal(t, gimli.ID, list[0].ID)
		assert.Equal(t, aragorn.ID, list[1].ID)
	}

	rec = doRequest(e, http.MethodGet, "/api/characters/507f1f77bcf86cd799439011", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/api/characters/"+gimli.ID, "")
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(e, http.MethodGet, "/api/characters/"+gimli.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(e, http.MethodDelete, "/api/characters/"+gimli.ID, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

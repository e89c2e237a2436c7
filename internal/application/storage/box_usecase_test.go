package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetoy/tetoy-api/internal/application/dto"
	appstorage "github.com/tetoy/tetoy-api/internal/application/storage"
	"github.com/tetoy/tetoy-api/internal/domain"
	"github.com/tetoy/tetoy-api/internal/domain/entity"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

// setupBox crea storage + caja de `total` unidades en el bloque A1 y devuelve
// (storageID, blockID, boxID).
func setupBox(t *testing.T, e *env, total int) (string, string, string) {
	t.Helper()
	st := e.createStorage(t, "Depósito Norte", "2x2")
	block := e.blockByName(t, st.ID, "A1")

	box, err := e.boxUC.Create(context.Background(), seedAuthUserID, st.ID, block.ID, dto.CreateBoxRequest{
		UserID:     seedUserID,
		ProductID:  seedProductID,
		TotalBoxes: total,
		Grade:      "A",
		Weight:     decimal.NewFromFloat(1.5),
		Price:      decimal.NewFromFloat(9.99),
		Countries:  []string{seedCountryID},
	})
	require.NoError(t, err)
	return st.ID, block.ID, box.ID
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Alta de un lote: fila de caja + países + entrada ADD_BOX con el texto esperado.
func TestBoxCreate_RegistraAddBox(t *testing.T) {
	e := newEnv()
	_, _, boxID := setupBox(t, e, 4)

	assert.Equal(t, []string{seedCountryID}, e.boxes.countries[boxID])

	added := e.logs.byAction(entity.ActionAddBox)
	require.Len(t, added, 1)
	assert.Equal(t,
		"Added a set of 4 'Teddy Bear' (priced at 9.99) to block 'A1'.",
		added[0].Message)
}

// Lote de una sola unidad: redacción en singular ("a" en lugar de "a set of N").
func TestBoxCreate_UnaUnidadMensajeSingular(t *testing.T) {
	e := newEnv()
	setupBox(t, e, 1)

	added := e.logs.byAction(entity.ActionAddBox)
	require.Len(t, added, 1)
	assert.Equal(t,
		"Added a 'Teddy Bear' (priced at 9.99) to block 'A1'.",
		added[0].Message)
}

// Referencia inexistente → falla antes de escribir caja o bitácora.
func TestBoxCreate_ProductoInexistente_NoEscribe(t *testing.T) {
	e := newEnv()
	st := e.createStorage(t, "Depósito Norte", "2x2")
	block := e.blockByName(t, st.ID, "A1")

	_, err := e.boxUC.Create(context.Background(), seedAuthUserID, st.ID, block.ID, dto.CreateBoxRequest{
		UserID:     seedUserID,
		ProductID:  "prod-falso",
		TotalBoxes: 2,
		Grade:      "A",
		Countries:  []string{seedCountryID},
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, e.boxes.boxes, "no debe persistirse caja alguna")
	assert.Empty(t, e.logs.byAction(entity.ActionAddBox))
}

// País fabricado entre los enviados → ErrCountryNotFound.
func TestBoxCreate_PaisInexistente(t *testing.T) {
	e := newEnv()
	st := e.createStorage(t, "Depósito Norte", "2x2")
	block := e.blockByName(t, st.ID, "A1")

	_, err := e.boxUC.Create(context.Background(), seedAuthUserID, st.ID, block.ID, dto.CreateBoxRequest{
		UserID:     seedUserID,
		ProductID:  seedProductID,
		TotalBoxes: 2,
		Grade:      "A",
		Countries:  []string{seedCountryID, "country-falso"},
	})
	assert.ErrorIs(t, err, domain.ErrCountryNotFound)
	assert.Empty(t, e.boxes.boxes)
}

// Bloque de otro storage → ErrBlockNotFound (el bloque debe pertenecer al storage de la URL).
func TestBoxCreate_BloqueDeOtroStorage(t *testing.T) {
	e := newEnv()
	st1 := e.createStorage(t, "Depósito Norte", "2x2")
	st2 := e.createStorage(t, "Depósito Sur", "2x2")
	blockDeSt2 := e.blockByName(t, st2.ID, "A1")

	_, err := e.boxUC.Create(context.Background(), seedAuthUserID, st1.ID, blockDeSt2.ID, dto.CreateBoxRequest{
		UserID:     seedUserID,
		ProductID:  seedProductID,
		TotalBoxes: 2,
		Grade:      "A",
		Countries:  []string{seedCountryID},
	})
	assert.ErrorIs(t, err, domain.ErrBlockNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Checkout
// ──────────────────────────────────────────────────────────────────────────────

// Ciclo completo: 5 unidades, retiro de 3 (PARTIAL) y luego 2 (CLOSED, sella
// checked_out_at). Un retiro posterior falla sin tocar los contadores.
func TestBoxCheckout_ParcialHastaCierre(t *testing.T) {
	e := newEnv()
	stID, blockID, boxID := setupBox(t, e, 5)

	out, err := e.boxUC.Checkout(context.Background(), seedAuthUserID, stID, blockID, boxID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, out.CheckedOutBoxes)
	assert.Equal(t, entity.BoxStatePartial, out.State)
	assert.Nil(t, out.CheckedOutAt, "un retiro parcial no sella el lote")

	out, err = e.boxUC.Checkout(context.Background(), seedAuthUserID, stID, blockID, boxID, 2)
	require.NoError(t, err)
	assert.Equal(t, 5, out.CheckedOutBoxes)
	assert.Equal(t, entity.BoxStateClosed, out.State)
	assert.NotNil(t, out.CheckedOutAt, "agotar el remanente sella el lote")

	_, err = e.boxUC.Checkout(context.Background(), seedAuthUserID, stID, blockID, boxID, 1)
	assert.ErrorIs(t, err, domain.ErrBoxAlreadyCheckedOut)

	box := e.boxes.boxes[boxID]
	assert.Equal(t, 5, box.CheckedOutBoxes, "el intento sobre lote sellado no muta contadores")
}

// Cantidad mayor al remanente → ErrInsufficientBoxes y contadores intactos.
func TestBoxCheckout_CantidadExcedeRemanente(t *testing.T) {
	e := newEnv()
	stID, blockID, boxID := setupBox(t, e, 5)

	_, err := e.boxUC.Checkout(context.Background(), seedAuthUserID, stID, blockID, boxID, 3)
	require.NoError(t, err)

	_, err = e.boxUC.Checkout(context.Background(), seedAuthUserID, stID, blockID, boxID, 3)
	assert.ErrorIs(t, err, domain.ErrInsufficientBoxes)
	assert.Equal(t, 3, e.boxes.boxes[boxID].CheckedOutBoxes, "el rechazo no muta contadores")
}

// Cada retiro exitoso registra CHECKOUT_BOX con la redacción del caso:
// parcial, total en un paso, y último remanente.
func TestBoxCheckout_MensajesDeBitacora(t *testing.T) {
	e := newEnv()
	stID, blockID, boxID := setupBox(t, e, 5)

	_, err := e.boxUC.Checkout(context.Background(), seedAuthUserID, stID, blockID, boxID, 3)
	require.NoError(t, err)
	_, err = e.boxUC.Checkout(context.Background(), seedAuthUserID, stID, blockID, boxID, 2)
	require.NoError(t, err)

	msgs := e.logs.byAction(entity.ActionCheckoutBox)
	require.Len(t, msgs, 2)
	assert.Equal(t, "Checked out 3 boxes of 'Teddy Bear' from 'A1' block.", msgs[0].Message)
	assert.Equal(t, "Checked out last remaining 2 boxes of 'Teddy Bear' (5 total) from 'A1' block.", msgs[1].Message)

	// Retiro total en un solo paso, en una caja nueva.
	box2, err := e.boxUC.Create(context.Background(), seedAuthUserID, stID, blockID, dto.CreateBoxRequest{
		UserID:     seedUserID,
		ProductID:  seedProductID,
		TotalBoxes: 4,
		Grade:      "B",
		Price:      decimal.NewFromFloat(5),
		Countries:  []string{seedCountryID},
	})
	require.NoError(t, err)
	_, err = e.boxUC.Checkout(context.Background(), seedAuthUserID, stID, blockID, box2.ID, 4)
	require.NoError(t, err)

	msgs = e.logs.byAction(entity.ActionCheckoutBox)
	require.Len(t, msgs, 3)
	assert.Equal(t, "Checked out all 4 boxes of 'Teddy Bear' from 'A1' block.", msgs[2].Message)
}

// raceTxRunner ejecuta una mutación competidora justo antes de abrir la
// "transacción", simulando otro retiro que gana la carrera entre la
// pre-validación del caso de uso y el UPDATE acotado.
type raceTxRunner struct {
	inner  *fakeTxRunner
	before func()
}

func (r *raceTxRunner) Run(ctx context.Context, fn func(
	storageRepo repository.StorageRepository,
	blockRepo repository.BlockRepository,
	boxRepo repository.BoxRepository,
	logRepo repository.ActivityLogRepository,
) error) error {
	if r.before != nil {
		competidor := r.before
		r.before = nil
		competidor()
	}
	return r.inner.Run(ctx, fn)
}

// boxUCConCarrera cablea un BoxUseCase cuyo TxRunner dispara `before` una vez.
func boxUCConCarrera(e *env, before func()) *appstorage.BoxUseCase {
	runner := &raceTxRunner{
		inner: &fakeTxRunner{
			storageRepo: e.storages,
			blockRepo:   e.blocks,
			boxRepo:     e.boxes,
			logRepo:     e.logs,
		},
		before: before,
	}
	checker := appstorage.NewRefChecker(e.storages, e.blocks, e.products, e.users, e.countries)
	return appstorage.NewBoxUseCase(runner, checker, e.boxes, e.products)
}

// Dos retiros concurrentes sobre el mismo remanente: el que llega segundo pasa
// la pre-validación pero el UPDATE acotado no encuentra fila elegible; se
// reclasifica contra el estado actual como ErrInsufficientBoxes.
func TestBoxCheckout_CarreraPerdidaPorRemanente(t *testing.T) {
	e := newEnv()
	stID, blockID, boxID := setupBox(t, e, 5)

	uc := boxUCConCarrera(e, func() {
		_, err := e.boxes.Checkout(boxID, 4, time.Now())
		require.NoError(t, err)
	})

	_, err := uc.Checkout(context.Background(), seedAuthUserID, stID, blockID, boxID, 2)
	assert.ErrorIs(t, err, domain.ErrInsufficientBoxes)
	assert.Equal(t, 4, e.boxes.boxes[boxID].CheckedOutBoxes, "el perdedor no muta contadores")

	// Solo el retiro ganador quedó en la bitácora.
	assert.Empty(t, e.logs.byAction(entity.ActionCheckoutBox))
}

// El competidor agota y sella el lote: el perdedor recibe ErrBoxAlreadyCheckedOut.
func TestBoxCheckout_CarreraPerdidaPorSellado(t *testing.T) {
	e := newEnv()
	stID, blockID, boxID := setupBox(t, e, 5)

	uc := boxUCConCarrera(e, func() {
		_, err := e.boxes.Checkout(boxID, 5, time.Now())
		require.NoError(t, err)
	})

	_, err := uc.Checkout(context.Background(), seedAuthUserID, stID, blockID, boxID, 1)
	assert.ErrorIs(t, err, domain.ErrBoxAlreadyCheckedOut)
	assert.Equal(t, 5, e.boxes.boxes[boxID].CheckedOutBoxes)
}

// El competidor elimina la caja: el perdedor recibe ErrBoxNotFound.
func TestBoxCheckout_CarreraPerdidaPorEliminacion(t *testing.T) {
	e := newEnv()
	stID, blockID, boxID := setupBox(t, e, 5)

	uc := boxUCConCarrera(e, func() {
		require.NoError(t, e.boxes.SoftDelete(boxID, time.Now()))
	})

	_, err := uc.Checkout(context.Background(), seedAuthUserID, stID, blockID, boxID, 1)
	assert.ErrorIs(t, err, domain.ErrBoxNotFound)
}

// Caja inexistente en el bloque → ErrBoxNotFound.
func TestBoxCheckout_CajaInexistente(t *testing.T) {
	e := newEnv()
	st := e.createStorage(t, "Depósito Norte", "2x2")
	block := e.blockByName(t, st.ID, "A1")

	_, err := e.boxUC.Checkout(context.Background(), seedAuthUserID, st.ID, block.ID, "box-falsa", 1)
	assert.ErrorIs(t, err, domain.ErrBoxNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Remove / ListByBlock
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar un lote lo oculta de los listados y registra DELETE_BOX.
func TestBoxRemove_RegistraDeleteBox(t *testing.T) {
	e := newEnv()
	stID, blockID, boxID := setupBox(t, e, 3)

	require.NoError(t, e.boxUC.Remove(context.Background(), seedAuthUserID, stID, blockID, boxID))

	box, err := e.boxes.GetByID(blockID, boxID)
	require.NoError(t, err)
	assert.Nil(t, box, "la caja eliminada no debe ser visible")

	deleted := e.logs.byAction(entity.ActionDeleteBox)
	require.Len(t, deleted, 1)
	assert.Equal(t, "Deleted 'Teddy Bear' box in 'A1'.", deleted[0].Message)
}

// El listado por bloque excluye lotes sellados (CLOSED).
func TestBoxListByBlock_ExcluyeSellados(t *testing.T) {
	e := newEnv()
	stID, blockID, boxID := setupBox(t, e, 2)

	out, err := e.boxUC.ListByBlock(context.Background(), stID, blockID, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Len(t, out.Items, 1)

	_, err = e.boxUC.Checkout(context.Background(), seedAuthUserID, stID, blockID, boxID, 2)
	require.NoError(t, err)

	out, err = e.boxUC.ListByBlock(context.Background(), stID, blockID, "", dto.PageRequest{})
	require.NoError(t, err)
	assert.Empty(t, out.Items, "un lote sellado no aparece en el listado")
}

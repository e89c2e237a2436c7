package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tetoy/tetoy-api/internal/application/dto"
	appstorage "github.com/tetoy/tetoy-api/internal/application/storage"
	"github.com/tetoy/tetoy-api/internal/domain"
	"github.com/tetoy/tetoy-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Entorno de test: fakes + casos de uso cableados como en main
// ──────────────────────────────────────────────────────────────────────────────

const (
	seedProductID   = "prod-1"
	seedProductName = "Teddy Bear"
	seedUserID      = "user-1"
	seedAuthUserID  = "auth-1"
	seedCountryID   = "country-ar"
)

type env struct {
	storages  *fakeStorageRepo
	blocks    *fakeBlockRepo
	boxes     *fakeBoxRepo
	logs      *fakeLogRepo
	products  *fakeProductRepo
	users     *fakeUserRepo
	countries *fakeCountryRepo

	uc    *appstorage.UseCase
	boxUC *appstorage.BoxUseCase
}

func newEnv() *env {
	e := &env{
		storages:  newFakeStorageRepo(),
		blocks:    newFakeBlockRepo(),
		boxes:     newFakeBoxRepo(),
		logs:      newFakeLogRepo(),
		products:  newFakeProductRepo(),
		users:     newFakeUserRepo(),
		countries: newFakeCountryRepo(),
	}
	e.products.products[seedProductID] = &entity.Product{ID: seedProductID, Name: seedProductName}
	e.users.users[seedUserID] = &entity.User{ID: seedUserID, Email: "cargador@tetoy.dev"}
	e.users.users[seedAuthUserID] = &entity.User{ID: seedAuthUserID, Email: "admin@tetoy.dev"}
	e.countries.countries[seedCountryID] = &entity.Country{ID: seedCountryID, Name: "Argentina"}

	txRunner := &fakeTxRunner{
		storageRepo: e.storages,
		blockRepo:   e.blocks,
		boxRepo:     e.boxes,
		logRepo:     e.logs,
	}
	checker := appstorage.NewRefChecker(e.storages, e.blocks, e.products, e.users, e.countries)
	e.uc = appstorage.NewUseCase(txRunner, e.storages, e.blocks, e.products, e.users, e.logs)
	e.boxUC = appstorage.NewBoxUseCase(txRunner, checker, e.boxes, e.products)
	return e
}

// createStorage crea un storage de test y devuelve su respuesta.
func (e *env) createStorage(t *testing.T, name, dimension string) *dto.StorageResponse {
	t.Helper()
	out, err := e.uc.Create(context.Background(), seedAuthUserID, dto.CreateStorageRequest{
		Name:         name,
		ProductID:    seedProductID,
		SupervisorID: seedUserID,
		Dimension:    dimension,
		Capacity:     "200kg",
	})
	require.NoError(t, err)
	return out
}

// blockByName busca un bloque de la grilla por nombre ("A1", "B3"...).
func (e *env) blockByName(t *testing.T, storageID, name string) *entity.Block {
	t.Helper()
	blocks, err := e.blocks.ListByStorage(storageID)
	require.NoError(t, err)
	for _, b := range blocks {
		if b.Name == name {
			return b
		}
	}
	t.Fatalf("bloque %q no encontrado en storage %s", name, storageID)
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Create
// ──────────────────────────────────────────────────────────────────────────────

// Crear un storage 3x3 materializa los 9 bloques y registra la entrada CREATE.
func TestCreateStorage_GeneraGrillaYBitacora(t *testing.T) {
	e := newEnv()
	out := e.createStorage(t, "Depósito Norte", "3x3")

	blocks, err := e.blocks.ListByStorage(out.ID)
	require.NoError(t, err)
	require.Len(t, blocks, 9, "una grilla 3x3 debe materializar 9 bloques")

	// Primera fila A1..A3, última C3; orden por (fila, columna).
	assert.Equal(t, "A1", blocks[0].Name)
	assert.Equal(t, "A3", blocks[2].Name)
	assert.Equal(t, "C3", blocks[8].Name)

	created := e.logs.byAction(entity.ActionCreate)
	require.Len(t, created, 1, "debe registrarse exactamente una entrada CREATE")
	assert.Equal(t, out.ID, created[0].StorageID)
	assert.Equal(t, seedAuthUserID, created[0].UserID)
	assert.Equal(t,
		"Created new storage 'Depósito Norte' with dimension '3x3' and '200kg' capacity.",
		created[0].Message)
}

// El caso mínimo 1x1 produce un único bloque A1.
func TestCreateStorage_Dimension1x1(t *testing.T) {
	e := newEnv()
	out := e.createStorage(t, "Mini", "1x1")

	blocks, err := e.blocks.ListByStorage(out.ID)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "A1", blocks[0].Name)
	assert.Equal(t, 1, blocks[0].Row)
	assert.Equal(t, 1, blocks[0].Column)
}

// Nombre ya usado por un storage activo → ErrDuplicateName, sin escribir nada.
func TestCreateStorage_NombreDuplicado(t *testing.T) {
	e := newEnv()
	e.createStorage(t, "Depósito Norte", "2x2")

	_, err := e.uc.Create(context.Background(), seedAuthUserID, dto.CreateStorageRequest{
		Name:         "Depósito Norte",
		ProductID:    seedProductID,
		SupervisorID: seedUserID,
		Dimension:    "3x3",
		Capacity:     "100kg",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateName)
	assert.Len(t, e.logs.byAction(entity.ActionCreate), 1, "el intento fallido no debe registrar bitácora")
}

// El nombre de un storage eliminado queda libre para reutilizarse.
func TestCreateStorage_NombreDeEliminadoSeReutiliza(t *testing.T) {
	e := newEnv()
	out := e.createStorage(t, "Depósito Norte", "2x2")
	require.NoError(t, e.uc.Delete(context.Background(), seedAuthUserID, out.ID))

	_, err := e.uc.Create(context.Background(), seedAuthUserID, dto.CreateStorageRequest{
		Name:         "Depósito Norte",
		ProductID:    seedProductID,
		SupervisorID: seedUserID,
		Dimension:    "2x2",
		Capacity:     "100kg",
	})
	assert.NoError(t, err)
}

// Producto inexistente → ErrProductNotFound antes de escribir fila alguna.
func TestCreateStorage_ProductoInexistente(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Create(context.Background(), seedAuthUserID, dto.CreateStorageRequest{
		Name:         "Depósito Sur",
		ProductID:    "prod-falso",
		SupervisorID: seedUserID,
		Dimension:    "2x2",
		Capacity:     "100kg",
	})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
	assert.Empty(t, e.logs.entries)
}

// Supervisor inexistente → ErrUserNotFound.
func TestCreateStorage_SupervisorInexistente(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Create(context.Background(), seedAuthUserID, dto.CreateStorageRequest{
		Name:         "Depósito Sur",
		ProductID:    seedProductID,
		SupervisorID: "user-falso",
		Dimension:    "2x2",
		Capacity:     "100kg",
	})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Delete (cascada)
// ──────────────────────────────────────────────────────────────────────────────

// Eliminar un storage marca en cascada sus bloques y las cajas de esos bloques,
// y registra UNA sola entrada DELETE (no una por bloque ni por caja).
func TestDeleteStorage_CascadaCompletaYUnaEntradaDELETE(t *testing.T) {
	e := newEnv()
	out := e.createStorage(t, "Depósito Norte", "2x2")
	blockA1 := e.blockByName(t, out.ID, "A1")
	blockB2 := e.blockByName(t, out.ID, "B2")

	// Dos cajas en bloques distintos.
	for _, blockID := range []string{blockA1.ID, blockB2.ID} {
		_, err := e.boxUC.Create(context.Background(), seedAuthUserID, out.ID, blockID, dto.CreateBoxRequest{
			UserID:     seedUserID,
			ProductID:  seedProductID,
			TotalBoxes: 3,
			Grade:      "A",
			Countries:  []string{seedCountryID},
		})
		require.NoError(t, err)
	}

	require.NoError(t, e.uc.Delete(context.Background(), seedAuthUserID, out.ID))

	s, err := e.storages.GetByID(out.ID)
	require.NoError(t, err)
	assert.Nil(t, s, "el storage eliminado no debe ser visible")

	blocks, err := e.blocks.ListByStorage(out.ID)
	require.NoError(t, err)
	assert.Empty(t, blocks, "los bloques deben quedar eliminados en cascada")

	for _, b := range e.boxes.boxes {
		assert.NotNil(t, b.DeletedAt, "toda caja del storage debe quedar eliminada")
	}

	deleted := e.logs.byAction(entity.ActionDelete)
	require.Len(t, deleted, 1, "la cascada registra exactamente una entrada DELETE")
	assert.Equal(t, "Deleted storage 'Depósito Norte'.", deleted[0].Message)
}

// Eliminar un storage inexistente (o ya eliminado) → ErrStorageNotFound.
func TestDeleteStorage_Inexistente(t *testing.T) {
	e := newEnv()
	err := e.uc.Delete(context.Background(), seedAuthUserID, "storage-falso")
	assert.ErrorIs(t, err, domain.ErrStorageNotFound)

	out := e.createStorage(t, "Depósito", "1x1")
	require.NoError(t, e.uc.Delete(context.Background(), seedAuthUserID, out.ID))
	err = e.uc.Delete(context.Background(), seedAuthUserID, out.ID)
	assert.ErrorIs(t, err, domain.ErrStorageNotFound, "el segundo delete debe fallar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Logs
// ──────────────────────────────────────────────────────────────────────────────

// El feed devuelve las entradas más recientes primero y expone un cursor con el
// timestamp (ms) de la última entrada de la página.
func TestLogs_OrdenYCursor(t *testing.T) {
	e := newEnv()
	out := e.createStorage(t, "Depósito Norte", "2x2")
	blockA1 := e.blockByName(t, out.ID, "A1")

	_, err := e.boxUC.Create(context.Background(), seedAuthUserID, out.ID, blockA1.ID, dto.CreateBoxRequest{
		UserID:     seedUserID,
		ProductID:  seedProductID,
		TotalBoxes: 2,
		Grade:      "A",
		Countries:  []string{seedCountryID},
	})
	require.NoError(t, err)

	page, err := e.uc.Logs(context.Background(), out.ID, time.Now())
	require.NoError(t, err)
	require.Len(t, page.Logs, 2)
	assert.Equal(t, entity.ActionAddBox, page.Logs[0].Action, "la entrada más reciente va primero")
	assert.Equal(t, entity.ActionCreate, page.Logs[1].Action)

	require.NotNil(t, page.Cursor)
	assert.Equal(t, page.Logs[1].Timestamp.UnixMilli(), *page.Cursor,
		"el cursor debe ser el timestamp de la última entrada devuelta")
}

// Pedir logs de un storage inexistente → ErrStorageNotFound.
func TestLogs_StorageInexistente(t *testing.T) {
	e := newEnv()
	_, err := e.uc.Logs(context.Background(), "storage-falso", time.Now())
	assert.ErrorIs(t, err, domain.ErrStorageNotFound)
}

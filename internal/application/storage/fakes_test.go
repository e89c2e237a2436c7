package storage_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/tetoy/tetoy-api/internal/domain/entity"
	"github.com/tetoy/tetoy-api/internal/domain/repository"
)

// Fakes en memoria de los puertos de persistencia. Implementan la misma
// semántica observable que los adaptadores de PostgreSQL (soft-delete,
// incremento acotado del checkout, orden del feed) para poder ejercitar los
// casos de uso sin base de datos.

type fakeStorageRepo struct {
	storages map[string]*entity.Storage
}

func newFakeStorageRepo() *fakeStorageRepo {
	return &fakeStorageRepo{storages: make(map[string]*entity.Storage)}
}

func (f *fakeStorageRepo) Create(s *entity.Storage) error {
	cp := *s
	f.storages[s.ID] = &cp
	return nil
}

func (f *fakeStorageRepo) GetByID(id string) (*entity.Storage, error) {
	s, ok := f.storages[id]
	if !ok || s.DeletedAt != nil {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeStorageRepo) GetByName(name string) (*entity.Storage, error) {
	for _, s := range f.storages {
		if s.DeletedAt == nil && s.Name == name {
			cp := *s
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStorageRepo) ExistsByProduct(productID string) (bool, error) {
	for _, s := range f.storages {
		if s.DeletedAt == nil && s.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStorageRepo) List(namePrefix string, limit, offset int) ([]*entity.StorageSummary, error) {
	var out []*entity.StorageSummary
	for _, s := range f.storages {
		if s.DeletedAt == nil && strings.HasPrefix(s.Name, namePrefix) {
			out = append(out, &entity.StorageSummary{Storage: *s})
		}
	}
	return out, nil
}

func (f *fakeStorageRepo) Count(namePrefix string) (int, error) {
	list, _ := f.List(namePrefix, 0, 0)
	return len(list), nil
}

func (f *fakeStorageRepo) SoftDelete(id, byUserID string, at time.Time) error {
	if s, ok := f.storages[id]; ok && s.DeletedAt == nil {
		s.DeletedAt = &at
		s.UpdatedAt = &at
		s.UpdatedByID = byUserID
	}
	return nil
}

type fakeBlockRepo struct {
	blocks map[string]*entity.Block
}

func newFakeBlockRepo() *fakeBlockRepo {
	return &fakeBlockRepo{blocks: make(map[string]*entity.Block)}
}

func (f *fakeBlockRepo) CreateMany(blocks []*entity.Block) error {
	for _, b := range blocks {
		cp := *b
		f.blocks[b.ID] = &cp
	}
	return nil
}

func (f *fakeBlockRepo) GetByID(storageID, blockID string) (*entity.Block, error) {
	b, ok := f.blocks[blockID]
	if !ok || b.StorageID != storageID || b.DeletedAt != nil {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBlockRepo) ListByStorage(storageID string) ([]*entity.Block, error) {
	var out []*entity.Block
	for _, b := range f.blocks {
		if b.StorageID == storageID && b.DeletedAt == nil {
			cp := *b
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Column < out[j].Column
	})
	return out, nil
}

func (f *fakeBlockRepo) IDsByStorage(storageID string) ([]string, error) {
	var ids []string
	for _, b := range f.blocks {
		if b.StorageID == storageID {
			ids = append(ids, b.ID)
		}
	}
	return ids, nil
}

func (f *fakeBlockRepo) SoftDeleteByStorage(storageID string, at time.Time) error {
	for _, b := range f.blocks {
		if b.StorageID == storageID && b.DeletedAt == nil {
			b.DeletedAt = &at
			b.UpdatedAt = &at
		}
	}
	return nil
}

type fakeBoxRepo struct {
	boxes     map[string]*entity.Box
	countries map[string][]string // boxID -> countryIDs
}

func newFakeBoxRepo() *fakeBoxRepo {
	return &fakeBoxRepo{
		boxes:     make(map[string]*entity.Box),
		countries: make(map[string][]string),
	}
}

func (f *fakeBoxRepo) Create(box *entity.Box) error {
	cp := *box
	f.boxes[box.ID] = &cp
	return nil
}

func (f *fakeBoxRepo) AddCountries(boxID string, countryIDs []string) error {
	f.countries[boxID] = append(f.countries[boxID], countryIDs...)
	return nil
}

func (f *fakeBoxRepo) GetByID(blockID, boxID string) (*entity.Box, error) {
	b, ok := f.boxes[boxID]
	if !ok || b.BlockID != blockID || b.DeletedAt != nil {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBoxRepo) ListByBlock(blockID, productPrefix string, limit, offset int) ([]*entity.BoxDetails, error) {
	var out []*entity.BoxDetails
	for _, b := range f.boxes {
		if b.BlockID == blockID && b.DeletedAt == nil && b.CheckedOutAt == nil {
			out = append(out, &entity.BoxDetails{Box: *b})
		}
	}
	return out, nil
}

func (f *fakeBoxRepo) CountByBlock(blockID, productPrefix string) (int, error) {
	list, _ := f.ListByBlock(blockID, productPrefix, 0, 0)
	return len(list), nil
}

// Checkout replica el incremento acotado del adaptador real: nil si la caja no
// existe, está eliminada, ya fue sellada o la cantidad excede el remanente.
func (f *fakeBoxRepo) Checkout(boxID string, quantity int, at time.Time) (*entity.Box, error) {
	b, ok := f.boxes[boxID]
	if !ok || b.DeletedAt != nil || b.CheckedOutAt != nil || b.CheckedOutBoxes+quantity > b.TotalBoxes {
		return nil, nil
	}
	b.CheckedOutBoxes += quantity
	b.UpdatedAt = &at
	if b.CheckedOutBoxes == b.TotalBoxes {
		sealed := at
		b.CheckedOutAt = &sealed
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBoxRepo) SoftDelete(boxID string, at time.Time) error {
	if b, ok := f.boxes[boxID]; ok && b.DeletedAt == nil {
		b.DeletedAt = &at
		b.UpdatedAt = &at
	}
	return nil
}

func (f *fakeBoxRepo) SoftDeleteByBlocks(blockIDs []string, at time.Time) error {
	for _, b := range f.boxes {
		for _, id := range blockIDs {
			if b.BlockID == id && b.DeletedAt == nil {
				b.DeletedAt = &at
				b.UpdatedAt = &at
			}
		}
	}
	return nil
}

type fakeLogRepo struct {
	entries []*entity.ActivityLog
	nextSeq int64
}

func newFakeLogRepo() *fakeLogRepo {
	return &fakeLogRepo{}
}

func (f *fakeLogRepo) Append(log *entity.ActivityLog) error {
	f.nextSeq++
	log.Seq = f.nextSeq
	cp := *log
	f.entries = append(f.entries, &cp)
	return nil
}

func (f *fakeLogRepo) ListByStorage(storageID string, before time.Time, limit int) ([]*entity.ActivityLogEntry, error) {
	var out []*entity.ActivityLogEntry
	for _, e := range f.entries {
		if e.StorageID == storageID && e.Timestamp.Before(before) {
			out = append(out, &entity.ActivityLogEntry{ActivityLog: *e})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].Timestamp.After(out[j].Timestamp)
		}
		return out[i].Seq > out[j].Seq
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// byAction filtra las entradas registradas por acción (helper de aserciones).
func (f *fakeLogRepo) byAction(action string) []*entity.ActivityLog {
	var out []*entity.ActivityLog
	for _, e := range f.entries {
		if e.Action == action {
			out = append(out, e)
		}
	}
	return out
}

type fakeProductRepo struct {
	products map[string]*entity.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok || p.DeletedAt != nil {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) GetByName(name, excludeID string) (*entity.Product, error) {
	for _, p := range f.products {
		if p.DeletedAt == nil && strings.EqualFold(p.Name, name) && p.ID != excludeID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeProductRepo) List(namePrefix string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range f.products {
		if p.DeletedAt == nil && strings.HasPrefix(p.Name, namePrefix) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Count(namePrefix string) (int, error) {
	list, _ := f.List(namePrefix, 0, 0)
	return len(list), nil
}

func (f *fakeProductRepo) Update(p *entity.Product) error {
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) SoftDelete(id, byUserID string, at time.Time) error {
	if p, ok := f.products[id]; ok {
		p.DeletedAt = &at
		p.UpdatedByID = byUserID
	}
	return nil
}

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(u *entity.User) error {
	cp := *u
	f.users[u.ID] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range f.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range f.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

type fakeCountryRepo struct {
	countries map[string]*entity.Country
}

func newFakeCountryRepo() *fakeCountryRepo {
	return &fakeCountryRepo{countries: make(map[string]*entity.Country)}
}

func (f *fakeCountryRepo) List() ([]*entity.Country, error) {
	var out []*entity.Country
	for _, c := range f.countries {
		cp := *c
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeCountryRepo) CountByIDs(ids []string) (int, error) {
	n := 0
	for _, id := range ids {
		if _, ok := f.countries[id]; ok {
			n++
		}
	}
	return n, nil
}

// fakeTxRunner ejecuta el callback directo contra los fakes, sin transacción.
type fakeTxRunner struct {
	storageRepo *fakeStorageRepo
	blockRepo   *fakeBlockRepo
	boxRepo     *fakeBoxRepo
	logRepo     *fakeLogRepo
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	storageRepo repository.StorageRepository,
	blockRepo repository.BlockRepository,
	boxRepo repository.BoxRepository,
	logRepo repository.ActivityLogRepository,
) error) error {
	return fn(r.storageRepo, r.blockRepo, r.boxRepo, r.logRepo)
}

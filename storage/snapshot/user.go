package snapshot

import (
	"github.com/hiendao/smartclass/core/user"
)

// userRow is the persisted shape of a User. The domain model hides the
// password hash from JSON (it must never reach callers), so the snapshot
// carries it in an explicit field instead.
type userRow struct {
	user.User
	StoredHash []byte `json:"passwordHash,omitempty"`
}

func (r *userRow) EntityID() string      { return r.User.ID }
func (r *userRow) SetEntityID(id string) { r.User.ID = id }

func (r *userRow) Clone() userRow {
	cp := userRow{User: r.User.Clone()}
	if r.StoredHash != nil {
		cp.StoredHash = append([]byte(nil), r.StoredHash...)
	}
	return cp
}

func (r userRow) toUser() user.User {
	usr := r.User
	usr.PasswordHash = r.StoredHash
	return usr
}

func toUserRow(usr user.User) userRow {
	return userRow{User: usr, StoredHash: usr.PasswordHash}
}

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil)

func NewUserRepository(db *DB) user.Repository {
	return &userRepository{db: db}
}

func (repo *userRepository) CheckUsernameUniqueness(username string, excludedUsers ...user.User) error {
	for _, r := range repo.db.users.list() {
		if r.Username != username {
			continue
		}
		excluded := false
		for _, ex := range excludedUsers {
			if ex.ID == r.User.ID {
				excluded = true
				break
			}
		}
		if !excluded {
			return user.ErrUsernameExists
		}
	}
	return nil
}

func (repo *userRepository) CreateUser(usr user.User) (user.User, error) {
	r, err := repo.db.users.create(toUserRow(usr))
	if err != nil {
		return user.User{}, err
	}
	return r.toUser(), nil
}

func (repo *userRepository) QueryAllUsers() ([]user.User, error) {
	rows := repo.db.users.list()
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.toUser())
	}
	return users, nil
}

func (repo *userRepository) GetUserByID(id string) (user.User, error) {
	r, err := repo.db.users.get(id)
	if err != nil {
		return user.User{}, err
	}
	return r.toUser(), nil
}

func (repo *userRepository) GetUserByUsername(username string) (user.User, error) {
	for _, r := range repo.db.users.list() {
		if r.Username == username {
			return r.toUser(), nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo *userRepository) UpdateUser(usr user.User) (user.User, error) {
	r, err := repo.db.users.update(toUserRow(usr))
	if err != nil {
		return user.User{}, err
	}
	return r.toUser(), nil
}

func (repo *userRepository) DeleteUser(id string) error {
	return repo.db.users.remove(id)
}

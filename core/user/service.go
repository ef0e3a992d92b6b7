package user

import (
	"time"

	"github.com/pkg/errors"

	"github.com/hiendao/smartclass/core"
)

var (
	// errors
	ErrNotFound           = errors.New("user not found")
	ErrUsernameExists     = errors.New("a user with this username already exists")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type (
	Repository interface {
		CheckUsernameUniqueness(username string, excludedUsers ...User) error
		CreateUser(user User) (User, error)
		QueryAllUsers() ([]User, error)
		GetUserByID(id string) (User, error)
		GetUserByUsername(username string) (User, error)
		UpdateUser(user User) (User, error)
		DeleteUser(id string) error
	}

	Service struct {
		repo Repository
		log  core.Logger
	}
)

func NewService(repo Repository, log core.Logger) *Service {
	return &Service{repo: repo, log: log}
}

func (svc *Service) checkUniqueness(uname string, exclUsers ...User) error {
	if err := svc.repo.CheckUsernameUniqueness(uname, exclUsers...); err != nil {
		if errors.Is(err, ErrUsernameExists) {
			return core.NewValidationError(err, core.FieldError{Field: "username", Error: err.Error()})
		}
		return err
	}
	return nil
}

// Authenticate matches credentials against the stored Users. The returned User
// never carries its password hash past the JSON boundary.
func (svc *Service) Authenticate(username, password string) (User, error) {
	usr, err := svc.repo.GetUserByUsername(core.CleanString(username, true /* lower */))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}
	if err = usr.CheckPassword(password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

func (svc *Service) Register(nu NewUser) (User, error) {
	if err := nu.Validate(svc); err != nil {
		return User{}, err
	}
	now := time.Now().UTC()
	usr := User{
		Username:  nu.Username,
		FullName:  nu.FullName,
		Role:      nu.Role,
		RelatedID: nu.RelatedID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(nu.Password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(usr)
}

func (svc *Service) QueryAll() ([]User, error) {
	return svc.repo.QueryAllUsers()
}

func (svc *Service) GetByID(id string) (User, error) {
	return svc.repo.GetUserByID(id)
}

func (svc *Service) GetByUsername(uname string) (User, error) {
	return svc.repo.GetUserByUsername(core.CleanString(uname, true /* lower */))
}

func (svc *Service) Update(id string, uu UpdateUser) (User, error) {
	if err := uu.Validate(); err != nil {
		return User{}, err
	}
	usr, err := svc.repo.GetUserByID(id)
	if err != nil {
		return User{}, err
	}
	if uu.FullName != "" {
		usr.FullName = uu.FullName
	}
	if uu.Role != "" {
		usr.Role = uu.Role
	}
	if uu.RelatedID != "" {
		usr.RelatedID = uu.RelatedID
	}
	if uu.Password != "" {
		if err = usr.SetPassword(uu.Password); err != nil {
			return User{}, err
		}
	}
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(usr)
}

func (svc *Service) Delete(id string) error {
	return svc.repo.DeleteUser(id)
}

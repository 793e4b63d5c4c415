package repos

import (
	"inkwell/internal/domain"

	"github.com/jmoiron/sqlx"
)

type UserRepo struct{ DB *sqlx.DB }

func NewUserRepo(db *sqlx.DB) *UserRepo { return &UserRepo{DB: db} }

func (r *UserRepo) ByEmail(email string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `SELECT id,email,name,password_hash,role FROM users WHERE LOWER(email)=LOWER(?)`, email)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateWithProfile inserts the user and its profile together. The
// profile is an explicit step of account creation, not a side effect.
func (r *UserRepo) CreateWithProfile(u domain.User, p domain.Profile) error {
	tx, err := r.DB.Beginx()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`
	  INSERT INTO users(id,email,name,password_hash,role) VALUES(?,?,?,?,?)
	`, u.ID, u.Email, u.Name, u.Hash, u.Role); err != nil {
		return err
	}
	if _, err := tx.Exec(`
	  INSERT INTO profiles(user_id,phone_number,address_line1,address_line2,city,postal_code,country)
	  VALUES(?,?,?,?,?,?,?)
	`, u.ID, p.PhoneNumber, p.AddressLine1, p.AddressLine2, p.City, p.PostalCode, p.Country); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *UserRepo) Profile(userID string) (domain.Profile, error) {
	var p domain.Profile
	err := r.DB.Get(&p, `
	  SELECT user_id, phone_number, address_line1, address_line2, city, postal_code, country
	  FROM profiles WHERE user_id = ?
	`, userID)
	return p, err
}

func (r *UserRepo) BindSession(sid, userID string) error {
	_, err := r.DB.Exec(`INSERT INTO sessions(id,user_id,last_seen)
	                      VALUES(?,?,CURRENT_TIMESTAMP)
	                      ON CONFLICT(id) DO UPDATE SET user_id=excluded.user_id,last_seen=CURRENT_TIMESTAMP`, sid, userID)
	return err
}

func (r *UserRepo) SessionUser(sid string) (*domain.User, error) {
	var u domain.User
	err := r.DB.Get(&u, `
	  SELECT u.id,u.email,u.name,u.password_hash,u.role
	  FROM sessions s
	  JOIN users u ON u.id=s.user_id
	  WHERE s.id=?`, sid)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) UnbindSession(sid string) error {
	_, err := r.DB.Exec(`UPDATE sessions SET user_id=NULL,last_seen=CURRENT_TIMESTAMP WHERE id=?`, sid)
	return err
}

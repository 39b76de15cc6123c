package database

import (
	"log"
	"sync"

	"github.com/gocql/gocql"
)

// Requêtes fréquentes du chemin d'authentification. gocql prépare chaque
// texte de requête une seule fois par session et réutilise le prepared
// statement côté serveur ; chaque getter rend donc une *gocql.Query neuve,
// car une Query partagée entre goroutines n'est pas sûre (Bind mute la
// structure avant Scan/Exec).
const (
	cqlGetUserByEmail = "SELECT user_id FROM users_by_email WHERE email = ?"

	cqlGetUserByID = `SELECT email, password, name, role, provider, phone, created_at
		FROM users WHERE user_id = ?`

	cqlInsertUser = `INSERT INTO users (user_id, email, password, name, role, provider, phone, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	cqlInsertUserByEmail = "INSERT INTO users_by_email (email, user_id) VALUES (?, ?)"
)

var (
	preparedSession *gocql.Session
	preparedOnce    sync.Once
)

// InitPreparedStatements résout la session users une fois au démarrage
// et déclenche la préparation serveur des requêtes d'authentification.
func InitPreparedStatements() {
	preparedOnce.Do(func() {
		session, err := GetUsersSession()
		if err != nil {
			log.Printf("⚠️ Impossible d'initialiser les prepared statements: %v", err)
			return
		}
		preparedSession = session
		log.Println("✅ Prepared statements initialisés")
	})
}

func GetPreparedGetUserByEmail() *gocql.Query {
	return preparedSession.Query(cqlGetUserByEmail)
}

func GetPreparedGetUserByID() *gocql.Query {
	return preparedSession.Query(cqlGetUserByID)
}

func GetPreparedInsertUser() *gocql.Query {
	return preparedSession.Query(cqlInsertUser)
}

func GetPreparedInsertUserByEmail() *gocql.Query {
	return preparedSession.Query(cqlInsertUserByEmail)
}

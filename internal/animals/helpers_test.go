package animals

import (
	"testing"

	"github.com/estradaranch/flockherd-backend/pkg/db"
	"gorm.io/gorm"
)

func testClient(t *testing.T, conn *gorm.DB) *db.Client {
	t.Helper()
	return db.NewFromConn(conn)
}

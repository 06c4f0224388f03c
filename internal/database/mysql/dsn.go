package mysql

import (
	gomysql "github.com/go-sql-driver/mysql"

	"github.com/cloudpets/petsvc/internal/database"
)

// buildDSN formats the driver DSN for a Cloud SQL unix socket, e.g.
//
//	user:pass@unix(/cloudsql/project:region:instance)/dbname?parseTime=true
//
// gomysql.NewConfig supplies the driver defaults (native password auth
// among them); only the socket transport and credentials are set here.
func buildDSN(cfg *database.Config) string {
	dc := gomysql.NewConfig()
	dc.User = cfg.User
	dc.Passwd = cfg.Password
	dc.Net = "unix"
	dc.Addr = cfg.SocketPath
	dc.DBName = cfg.Database
	// parseTime=true → DATETIME/TIMESTAMP columns scan as time.Time.
	dc.ParseTime = true
	return dc.FormatDSN()
}

package devops

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
)

// PontoSettings is the service configuration, stored as YAML in the
// SSM parameter "ponto-settings". SuperAdmins replaces the old
// hardcoded identity sentinel: privileged uids are configuration, not
// code.
type PontoSettings struct {
	SuperAdmins          []string `yaml:"superAdmins"`
	EvidenceBucket       string   `yaml:"evidenceBucket"`
	EvidenceBaseURL      string   `yaml:"evidenceBaseUrl"`
	BiometricModel       string   `yaml:"biometricModel"`
	BiometricMinScore    float64  `yaml:"biometricMinScore"`
	BiometricTimeoutSecs int      `yaml:"biometricTimeoutSecs"`
	MaxShiftHours        int      `yaml:"maxShiftHours"`
}

func (s PontoSettings) BiometricTimeout() time.Duration {
	if s.BiometricTimeoutSecs <= 0 {
		return 20 * time.Second
	}
	return time.Duration(s.BiometricTimeoutSecs) * time.Second
}

var (
	once     sync.Once
	settings PontoSettings
	loadErr  error
)

// LoadPontoSettings fetches and caches the settings. Set PONTO_SETTINGS
// to a YAML document to bypass SSM for local runs.
func LoadPontoSettings(ctx context.Context) (PontoSettings, error) {
	once.Do(func() {
		if local := os.Getenv("PONTO_SETTINGS"); local != "" {
			loadErr = yaml.Unmarshal([]byte(local), &settings)
			return
		}

		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			loadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String("ponto-settings"),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			loadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &settings); err != nil {
			loadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}
	})

	return settings, loadErr
}

// DBEntry describes one tenant database, kept in the shared
// "databases" SSM parameter.
type DBEntry struct {
	Name     string `yaml:"name"`
	Host     string `yaml:"host"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

func (db DBEntry) GetDSN(dbname string) string {
	host := db.Host
	if !strings.Contains(host, ":") {
		host = host + ":3306"
	}
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true", db.Username, db.Password, host, dbname)
}

var (
	dbOnce    sync.Once
	dbList    []DBEntry
	dbLoadErr error
)

func LoadDBConfig(ctx context.Context) ([]DBEntry, error) {
	dbOnce.Do(func() {
		cfg, err := config.LoadDefaultConfig(ctx)
		if err != nil {
			dbLoadErr = fmt.Errorf("load aws config: %w", err)
			return
		}

		client := ssm.NewFromConfig(cfg)

		out, err := client.GetParameter(ctx, &ssm.GetParameterInput{
			Name:           aws.String("databases"),
			WithDecryption: aws.Bool(true),
		})
		if err != nil {
			dbLoadErr = fmt.Errorf("get parameter: %w", err)
			return
		}

		var parsed []DBEntry
		if err := yaml.Unmarshal([]byte(*out.Parameter.Value), &parsed); err != nil {
			dbLoadErr = fmt.Errorf("unmarshal yaml: %w", err)
			return
		}

		dbList = parsed
	})

	return dbList, dbLoadErr
}

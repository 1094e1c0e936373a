package attendance

import (
	"context"
	"crypto/rand"
	"database/sql"
	"log"
	"math"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"attendance-backend/internal/employee"
	platformdb "attendance-backend/internal/platform/db"
	"attendance-backend/internal/settings"
	"attendance-backend/internal/worklocation"
)

// ===== インターフェース群 =====

type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type IDGen interface {
	New() (string, error)
}

type ulidGen struct{}

func (ulidGen) New() (string, error) {
	t := time.Now().UTC()
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(t), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Resolver: 識別子（コード or 電話番号）から職員を引く。見つからなければ (nil, nil)。
type Resolver interface {
	Resolve(ctx context.Context, identifier string) (*employee.Employee, error)
}

// SiteFinder: 座標から最寄りの承認済み拠点を引く。
type SiteFinder interface {
	NearestSite(ctx context.Context, lat, lon float64) (*worklocation.WorkLocation, float64, bool, error)
}

type RulesProvider interface {
	WorkRules(ctx context.Context) (settings.WorkRules, error)
}

// Pinger: 打刻受理後の通知（fire and forget）。
type Pinger interface {
	EventRecorded()
}

// TxRunner: Recorderの「再評価して書く」一連を1トランザクションで実行する。
type TxRunner func(ctx context.Context, fn func(ctx context.Context, r Repo) error) error

// ===== Service本体 =====

type Service struct {
	repo     Repo
	runTx    TxRunner
	runRead  TxRunner // 読み取り専用Tx（ステータス照会のスナップショット用）
	resolver Resolver
	sites    SiteFinder
	rules    RulesProvider
	pinger   Pinger
	clock    Clock
	id       IDGen
	loc      *time.Location
}

func NewService(conn *sql.DB, resolver Resolver, sites SiteFinder, rules RulesProvider, pinger Pinger, loc *time.Location) *Service {
	return &Service{
		repo: NewRepo(conn),
		runTx: func(ctx context.Context, fn func(ctx context.Context, r Repo) error) error {
			return platformdb.RunInTx(ctx, conn, nil, func(ctx context.Context, tx platformdb.DBTX) error {
				return fn(ctx, NewRepo(tx))
			})
		},
		runRead: func(ctx context.Context, fn func(ctx context.Context, r Repo) error) error {
			return platformdb.ReadOnly(ctx, conn, func(ctx context.Context, tx platformdb.DBTX) error {
				return fn(ctx, NewRepo(tx))
			})
		},
		resolver: resolver,
		sites:    sites,
		rules:    rules,
		pinger:   pinger,
		clock:    realClock{},
		id:       ulidGen{},
		loc:      loc,
	}
}

// ===== ステータス照会（読み取り専用・ロック不要） =====

type StatusResult struct {
	Employee    *employee.Employee
	Eval        Evaluation
	Todays      []Event
	MonthlyDays int
}

// Status: 識別子から職員・当日ログ・次の動作・遅刻・月間出勤日数を返す。
// 見つからない場合は (nil, nil)。
func (s *Service) Status(ctx context.Context, identifier string) (*StatusResult, error) {
	emp, err := s.resolver.Resolve(ctx, identifier)
	if err != nil {
		return nil, asDomainErr(err)
	}
	if emp == nil {
		return nil, nil
	}

	rules, err := s.rules.WorkRules(ctx)
	if err != nil {
		return nil, asDomainErr(err)
	}

	now := s.clock.Now().In(s.loc)
	today := now.Format(DateLayout)

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc).Format(DateLayout)

	// 当日ログと月次集計を同一スナップショットで読む
	var (
		todays  []Event
		monthly int
	)
	err = s.runRead(ctx, func(ctx context.Context, r Repo) error {
		var err error
		if todays, err = r.EventsOn(ctx, emp.ID, today); err != nil {
			return err
		}
		monthly, err = r.MonthlyCheckInDays(ctx, emp.ID, monthStart, today)
		return err
	})
	if err != nil {
		return nil, asDomainErr(err)
	}

	return &StatusResult{
		Employee:    emp,
		Eval:        Evaluate(todays, now, rules),
		Todays:      todays,
		MonthlyDays: monthly,
	}, nil
}

// ===== 打刻（状態再評価＋端末Guard＋追記、単一トランザクション） =====

type RecordResult struct {
	EventID      int64
	EmployeeName string
	Type         EventType
	Bound        bool   // 今回の打刻で初回バインドが行われた
	SiteName     string // 半径内で特定できた拠点名（なければ空）
}

func normalizeReason(notes string) (ReasonCode, bool) {
	v := strings.ToLower(strings.TrimSpace(notes))
	if v == "none" {
		v = ""
	}
	r := ReasonCode(v)
	return r, r.Valid()
}

// Record: クライアントの申告は信用せず、書き込み時点の状態で再評価する。
// 行ロック下で評価と追記を行うため、同時送信は片方だけが受理される。
func (s *Service) Record(ctx context.Context, req CheckInRequest) (*RecordResult, error) {
	if !req.Type.Valid() {
		return nil, ErrInvalid("type must be 'Check-In' or 'Check-Out'")
	}
	reason, ok := normalizeReason(req.Notes)
	if !ok {
		return nil, ErrInvalid("unknown reason code")
	}
	if req.Fingerprint == "" {
		return nil, ErrInvalid("fingerprint is required")
	}
	if !ValidToken(req.Token) {
		return nil, ErrInvalid("device token is malformed")
	}

	emp, err := s.resolver.Resolve(ctx, req.Identifier)
	if err != nil {
		return nil, asDomainErr(err)
	}
	if emp == nil {
		return nil, ErrNotFound("identifier is not registered")
	}

	rules, err := s.rules.WorkRules(ctx)
	if err != nil {
		return nil, asDomainErr(err)
	}

	var (
		result RecordResult
		audit  *BindingAudit
	)

	txErr := s.runTx(ctx, func(ctx context.Context, r Repo) error {
		locked, err := r.EmployeeForUpdate(ctx, emp.ID)
		if err != nil {
			return err
		}
		if locked == nil {
			return ErrNotFound("identifier is not registered")
		}

		now := s.clock.Now().In(s.loc)
		today := now.Format(DateLayout)

		todays, err := r.EventsOn(ctx, locked.ID, today)
		if err != nil {
			return err
		}

		eval := Evaluate(todays, now, rules)
		if req.Type != eval.NextAction {
			return ErrWrongAction("next permitted action is " + string(eval.NextAction))
		}
		if req.Type == EventCheckIn && eval.IsLate && reason == ReasonNone {
			return ErrLateReasonRequired()
		}

		tokenOwner, err := r.EmployeeByToken(ctx, req.Token)
		if err != nil {
			return err
		}

		decision := Authorize(locked, req.Token, req.Fingerprint, tokenOwner)
		audit = &BindingAudit{
			EmployeeID:  locked.ID,
			Decision:    decision.String(),
			DeviceToken: req.Token,
			Fingerprint: req.Fingerprint,
		}

		// 位置情報は監査用の注釈。無くても、圏外でも、引けなくても打刻は止めない。
		var locationID *int64
		if req.Location != nil {
			site, dist, inRange, err := s.sites.NearestSite(ctx, req.Location.Lat, req.Location.Lon)
			if err != nil {
				log.Printf("[WARN] work location lookup failed, recording without site: %v", err)
				site = nil
			}
			if site != nil {
				d := dist
				audit.Distance = &d
				audit.OutOfRange = !inRange
				if inRange {
					locationID = &site.ID
					result.SiteName = site.Name
				}
			}
		}

		if decision.Rejected() {
			return ErrBindingRejected("device does not match the registered binding")
		}

		switch decision {
		case DecisionBind:
			if err := r.BindDevice(ctx, locked.ID, req.Fingerprint, req.Token); err != nil {
				return err
			}
			result.Bound = true
		case DecisionRotateToken:
			log.Printf("[AUTH] token mismatch but fingerprint matched, rotating token for employee %d", locked.ID)
			if err := r.UpdateDeviceToken(ctx, locked.ID, req.Token); err != nil {
				return err
			}
		}

		ev := Event{
			EmployeeID:  locked.ID,
			Type:        req.Type,
			EventDate:   today,
			CheckTime:   now.Format(TimeLayout),
			RecordedAt:  now,
			Reason:      reason,
			DeviceToken: req.Token,
			Fingerprint: req.Fingerprint,
			LocationID:  locationID,
		}
		if req.Location != nil {
			lat, lon := req.Location.Lat, req.Location.Lon
			ev.Latitude, ev.Longitude = &lat, &lon
		}
		if req.Type == EventCheckOut {
			if firstIn, ok := FirstCheckInTime(todays); ok {
				hours := math.Round(now.Sub(firstIn).Hours()*100) / 100
				ev.DurationHours = &hours
			}
		}

		id, err := r.InsertEvent(ctx, &ev)
		if err != nil {
			return err
		}

		result.EventID = id
		result.EmployeeName = locked.Name
		result.Type = req.Type
		return nil
	})

	// Guardの判定はトランザクションの成否に関わらず監査に残す
	s.writeAudit(ctx, audit)

	if txErr != nil {
		return nil, asDomainErr(txErr)
	}

	s.pinger.EventRecorded()
	return &result, nil
}

func (s *Service) writeAudit(ctx context.Context, a *BindingAudit) {
	if a == nil {
		return
	}
	id, err := s.id.New()
	if err != nil {
		log.Printf("[WARN] audit id generation failed: %v", err)
		return
	}
	a.AuditID = id
	if err := s.repo.InsertAudit(ctx, a); err != nil {
		log.Printf("[WARN] binding audit write failed: %v", err)
	}
}

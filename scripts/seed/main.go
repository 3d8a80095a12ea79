// Command seed populates a development database with a small, predictable
// data set so the dashboard endpoints have something to aggregate.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/school-mgmt-api/pkg/config"
	"github.com/noah-isme/school-mgmt-api/pkg/database"
)

func main() {
	reset := flag.Bool("reset", false, "truncate all tables before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := database.ApplySchema(db); err != nil {
		log.Fatalf("apply schema: %v", err)
	}

	if *reset {
		if _, err := db.ExecContext(ctx, `TRUNCATE assignments, subjects, courses, students, teachers RESTART IDENTITY CASCADE`); err != nil {
			log.Fatalf("reset: %v", err)
		}
		log.Println("tables truncated")
	}

	if err := seed(ctx, db); err != nil {
		log.Fatalf("seed: %v", err)
	}
	log.Println("seed complete")
}

func seed(ctx context.Context, db *sqlx.DB) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck

	var aliceID, bobID int64
	if err := tx.QueryRowxContext(ctx,
		`INSERT INTO teachers (name, subject, qualification, experience, contact, email)
		 VALUES ('Alice Carter', 'Mathematics', 'MSc Mathematics', '8 years', '555-0101', 'alice.carter@school.test')
		 RETURNING id`).Scan(&aliceID); err != nil {
		return err
	}
	if err := tx.QueryRowxContext(ctx,
		`INSERT INTO teachers (name, subject, qualification, experience, contact, email)
		 VALUES ('Bob Mensah', 'Physics', 'BSc Physics', '4 years', '555-0102', 'bob.mensah@school.test')
		 RETURNING id`).Scan(&bobID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO students (roll_no, name, class, section, contact, email, address) VALUES
		 ('S-1001', 'Chidi Okafor', '10', 'A', '555-0201', 'chidi@school.test', '12 Main St'),
		 ('S-1002', 'Dana Lee', '10', 'B', '555-0202', NULL, NULL),
		 ('S-1003', 'Elif Demir', '11', 'A', '555-0203', 'elif@school.test', NULL)`); err != nil {
		return err
	}

	var mathID int64
	if err := tx.QueryRowxContext(ctx,
		`INSERT INTO subjects (code, name, teacher_id, class)
		 VALUES ('MTH101', 'Mathematics', $1, '10')
		 RETURNING id`, aliceID).Scan(&mathID); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO subjects (code, name, teacher_id, class)
		 VALUES ('PHY101', 'Physics', $1, '11')`, bobID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO courses (code, name, instructor_id, duration, status, description) VALUES
		 ('CRS-ALG', 'Algebra Foundations', $1, '12 weeks', 'Ongoing', 'Core algebra track'),
		 ('CRS-MECH', 'Classical Mechanics', $2, '10 weeks', 'Upcoming', NULL)`, aliceID, bobID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO assignments (subject_id, title, description, due_date, status, created_by) VALUES
		 ($1, 'Quadratic equations worksheet', 'Exercises 1-20', CURRENT_DATE + 3, 'Pending', $2),
		 ($1, 'Linear systems quiz', NULL, CURRENT_DATE + 10, 'In Progress', $2)`, mathID, aliceID); err != nil {
		return err
	}

	return tx.Commit()
}

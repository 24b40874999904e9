// Package main provides a CLI tool for seeding the database with initial data.
package main

import (
	"context"
	"fmt"
	"os"

	"oilbook/internal/core/types"
	"oilbook/internal/domain/auth"
	"oilbook/internal/domain/catalogs/customer"
	"oilbook/internal/domain/catalogs/office"
	"oilbook/internal/domain/catalogs/product"
	"oilbook/internal/domain/catalogs/supplier"
	"oilbook/internal/domain/oiltype"
	"oilbook/internal/infrastructure/storage/postgres"
	"oilbook/internal/infrastructure/storage/postgres/auth_repo"
	"oilbook/internal/infrastructure/storage/postgres/catalog_repo"
	"oilbook/pkg/logger"
	"oilbook/pkg/numerator"
)

func main() {
	log, err := logger.New(logger.Config{
		Level:       "info",
		Development: true,
	})
	if err != nil {
		fmt.Printf("failed to create logger: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	if err := postgres.RunMigrations(dbURL); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dbURL))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	txManager := postgres.NewTxManager(pool)
	num := numerator.New(func(ctx context.Context) numerator.Querier {
		return txManager.GetQuerier(ctx)
	})

	officeRepo := catalog_repo.NewOfficeRepo(txManager)
	officeService := office.NewService(officeRepo, txManager)

	// --- Office ---
	hq, err := officeRepo.GetByCode(ctx, "HQ")
	if err != nil {
		hq = office.New("HQ", "สำนักงานใหญ่ กำแพงเพชร")
		addr := "กำแพงเพชร"
		hq.Address = &addr
		if err := officeService.Create(ctx, hq); err != nil {
			log.Fatalw("failed to create office", "error", err)
		}
		log.Infow("office created", "code", hq.Code, "name", hq.Name)
	} else {
		log.Infow("office already present", "code", hq.Code)
	}

	// --- Admin user ---
	authService := auth.NewService(auth_repo.NewUserRepo(txManager), txManager, nil, auth.DefaultServiceConfig())
	if _, err := authService.CreateUser(ctx, hq.ID, "admin@oilseve.com", "ผู้ดูแลระบบ", "admin1234", auth.RoleSuperAdmin); err != nil {
		log.Warnw("admin user not created (may already exist)", "error", err)
	} else {
		log.Info("admin user created: admin@oilseve.com")
	}

	// --- Products ---
	productService := product.NewService(catalog_repo.NewProductRepo(txManager), txManager, num)
	seedProducts := []struct {
		code, name string
		oilType    oiltype.OilType
		buyPrice   float64
	}{
		{"110001", "พาวเวอร์ดีเซล", oiltype.PowerDiesel, 41.0316},
		{"120001", "แก๊สโซฮอล์ E20", oiltype.GasoholE20, 25.6853},
		{"180001", "แก๊สโซฮอล์ 91", oiltype.Gasohol91, 27.4048},
		{"140001", "ดีเซล B7", oiltype.DieselB7, 29.94},
		{"150001", "ดีเซล B10", oiltype.Diesel, 28.94},
		{"160001", "เบนซิน 95", oiltype.Benzin, 35.0},
		{"170001", "แก๊สโซฮอล์ 95", oiltype.Gasohol95, 30.0},
	}
	for _, sp := range seedProducts {
		p := product.New(hq.ID, sp.code, sp.name, sp.oilType)
		p.BuyPrice = types.NewMoney(sp.buyPrice)
		if err := productService.Create(ctx, p); err != nil {
			log.Warnw("product not created", "code", sp.code, "error", err)
		}
	}
	log.Infow("products seeded", "count", len(seedProducts))

	// --- Suppliers ---
	supplierService := supplier.NewService(catalog_repo.NewSupplierRepo(txManager), txManager, num)
	seedSuppliers := []struct {
		code, name, taxID string
	}{
		{"00326", "บจก.สตาร์ฟูเอลส์มาร์เก็ตติ้ง", "0105555138899"},
		{"54132", "บริษัท แสงเงินออยล์ จำกัด", "0105541054132"},
		{"00201", "บริษัท ธัญญะมงคล จำกัด", "0415544000201"},
	}
	for _, ss := range seedSuppliers {
		s := supplier.New(hq.ID, ss.code, ss.name)
		taxID := ss.taxID
		s.TaxID = &taxID
		s.VATRate = 7
		if err := supplierService.Create(ctx, s); err != nil {
			log.Warnw("supplier not created", "code", ss.code, "error", err)
		}
	}
	log.Infow("suppliers seeded", "count", len(seedSuppliers))

	// --- Customers ---
	customerService := customer.NewService(catalog_repo.NewCustomerRepo(txManager), txManager, num)
	seedCustomers := []struct {
		code, name, address string
		totalDebt           float64
	}{
		{"00305", "หจก.อัครวัฒน์กำแพงเพชรก่อสร้าง", "261/2 ม.27 ต.คลองน้ำไหล ต.คลองลาน กพ", 205971},
		{"00102", "หจก.จรูญการยาง", "629 ถ.เจริญสุข ต.ในเมือง อ.เมือง กพ", 0},
		{"00921", "หจก.พรวิษณุก่อสร้าง", "135 ม.4 ต.คลองน้ำไหล อ.คลองลาน กพ", 510481},
	}
	for _, sc := range seedCustomers {
		c := customer.New(hq.ID, sc.code, sc.name, customer.TypeCredit)
		addr := sc.address
		c.Address = &addr
		c.TotalDebt = types.NewMoney(sc.totalDebt)
		if err := customerService.Create(ctx, c); err != nil {
			log.Warnw("customer not created", "code", sc.code, "error", err)
		}
	}
	log.Infow("customers seeded", "count", len(seedCustomers))

	log.Info("seed complete, login: admin@oilseve.com / admin1234")
}

// Package pipeline wires the stages together: extract the three raw
// entities, normalize each one, build the key maps, resolve and split the
// sales lines, replace the target schema, load in dependency order, and
// append the data-quality report.
//
// Failure isolation follows the error taxonomy: connectivity problems abort
// the run before any stage; a missing extract is fatal only for the entities
// derived from it; field-level malformation never aborts anything.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fleximart/internal/clean"
	"fleximart/internal/config"
	"fleximart/internal/datasource"
	"fleximart/internal/datasource/file"
	"fleximart/internal/keymap"
	"fleximart/internal/metrics"
	"fleximart/internal/model"
	csvparser "fleximart/internal/parser/csv"
	"fleximart/internal/report"
	"fleximart/internal/split"
	"fleximart/internal/storage"
	"fleximart/internal/transformer/builtin"
	"fleximart/pkg/records"
)

// Pipeline executes one full batch run against an open repository.
type Pipeline struct {
	cfg  config.Run
	repo storage.Repository
}

// New binds a run configuration to a repository. The repository is owned by
// the caller; the pipeline never closes it.
func New(cfg config.Run, repo storage.Repository) *Pipeline {
	return &Pipeline{cfg: cfg, repo: repo}
}

// extracted carries one entity's raw records or its fatal extract error.
type extracted struct {
	recs []records.Record
	err  error
}

// Run executes the batch. It returns an error when the run as a whole
// failed (connectivity, schema, load) or when any entity's pipeline was
// aborted; partial progress for unaffected entities is kept either way.
func (p *Pipeline) Run(ctx context.Context) error {
	job := p.cfg.Job

	customers := p.extract(ctx, "customers", file.NewLocal(p.cfg.Sources.Customers))
	products := p.extract(ctx, "products", file.NewLocal(p.cfg.Sources.Products))
	sales := p.extract(ctx, "sales", file.NewLocal(p.cfg.Sources.Sales))

	summary := report.Summary{GeneratedAt: time.Now()}
	summary.Customers = rawEntityStats(customers, clean.CustomerFields)
	summary.Products = rawEntityStats(products, clean.ProductFields)
	summary.Sales = rawEntityStats(sales, clean.SaleFields)
	metrics.RecordRows(job, "customers", "missing_values", int64(summary.Customers.Missing))
	metrics.RecordRows(job, "products", "missing_values", int64(summary.Products.Missing))
	metrics.RecordRows(job, "sales", "missing_values", int64(summary.Sales.Missing))

	// Normalize. Product price imputation reads the raw sales extract; when
	// sales are missing the tier-a source is simply empty.
	var (
		cleanCustomers []model.Customer
		cleanProducts  []model.Product
		saleLines      []model.SaleLine
	)
	if customers.err == nil {
		start := time.Now()
		var st clean.Stats
		cleanCustomers, st = clean.Customers(customers.recs)
		metrics.RecordStage(job, "normalize_customers", nil, time.Since(start))
		metrics.RecordRows(job, "customers", "duplicates_removed", int64(st.DroppedDuplicates))
		metrics.RecordRows(job, "customers", "degraded_fields", int64(st.DegradedFields))
		log.Printf("normalize: entity=customers in=%d out=%d dropped_dups=%d degraded=%d",
			st.In, st.Out, st.DroppedDuplicates, st.DegradedFields)
	}
	if products.err == nil {
		start := time.Now()
		var st clean.Stats
		cleanProducts, st = clean.Products(products.recs, sales.recs)
		metrics.RecordStage(job, "normalize_products", nil, time.Since(start))
		metrics.RecordRows(job, "products", "duplicates_removed", int64(st.DroppedDuplicates))
		metrics.RecordRows(job, "products", "degraded_fields", int64(st.DegradedFields))
		log.Printf("normalize: entity=products in=%d out=%d dropped_dups=%d degraded=%d",
			st.In, st.Out, st.DroppedDuplicates, st.DegradedFields)
	}
	if sales.err == nil {
		start := time.Now()
		var st clean.Stats
		saleLines, st = clean.Sales(sales.recs)
		metrics.RecordStage(job, "normalize_sales", nil, time.Since(start))
		metrics.RecordRows(job, "sales", "duplicates_removed", int64(st.DroppedDuplicates))
		metrics.RecordRows(job, "sales", "degraded_fields", int64(st.DegradedFields))
		log.Printf("normalize: entity=sales in=%d out=%d dropped_dups=%d degraded=%d",
			st.In, st.Out, st.DroppedDuplicates, st.DegradedFields)
	}

	// Key maps are pure functions of the normalized sets. A failed entity
	// contributes an empty map, so every reference to it resolves to
	// "unresolved" downstream rather than an error.
	customerKeys := keymap.Build(customerPairs(cleanCustomers))
	productKeys := keymap.Build(productPairs(cleanProducts))

	var derived split.Result
	if sales.err == nil {
		start := time.Now()
		derived = split.Derive(saleLines, customerKeys, productKeys)
		metrics.RecordStage(job, "resolve_split", nil, time.Since(start))
		metrics.RecordRows(job, "sales", "unresolved_customers", int64(derived.UnresolvedCustomers))
		metrics.RecordRows(job, "sales", "dropped_items", int64(derived.DroppedItems))
		log.Printf("split: orders=%d items=%d unresolved_customers=%d dropped_items=%d",
			len(derived.Orders), len(derived.Items), derived.UnresolvedCustomers, derived.DroppedItems)
	}

	// Replace the target schema once, before any load. A failure here is a
	// connectivity-class error: nothing gets loaded.
	start := time.Now()
	err := storage.ReplaceSchema(ctx, p.cfg.Storage.Kind, p.repo)
	metrics.RecordStage(job, "replace_schema", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("replace schema: %w", err)
	}
	log.Printf("schema replaced (kind=%s)", p.cfg.Storage.Kind)

	// Load in dependency order, skipping entities whose extract failed.
	var tables []storage.Table
	if customers.err == nil {
		tables = append(tables, storage.CustomersTable(cleanCustomers))
	}
	if products.err == nil {
		tables = append(tables, storage.ProductsTable(cleanProducts))
	}
	if sales.err == nil {
		tables = append(tables, storage.OrdersTable(derived.Orders))
		tables = append(tables, storage.OrderItemsTable(derived.Items))
	}

	start = time.Now()
	counts, err := storage.LoadTables(ctx, p.repo, p.cfg.Runtime.BatchSize, tables)
	metrics.RecordStage(job, "load", err, time.Since(start))
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	for name, n := range counts {
		metrics.RecordRows(job, name, "loaded", n)
	}

	summary.Customers.Loaded = counts[storage.TableCustomers]
	summary.Products.Loaded = counts[storage.TableProducts]
	summary.OrdersLoaded = counts[storage.TableOrders]
	summary.ItemsLoaded = counts[storage.TableOrderItems]

	if p.cfg.Report.Path != "" {
		if err := report.Append(p.cfg.Report.Path, summary); err != nil {
			return err
		}
		log.Printf("report appended: %s", p.cfg.Report.Path)
	}

	return errors.Join(customers.err, products.err, sales.err)
}

// extract opens and parses one entity's raw extract. The error, if any, is
// fatal for this entity only and is surfaced at the end of the run.
func (p *Pipeline) extract(ctx context.Context, entity string, src datasource.Source) extracted {
	start := time.Now()
	rc, err := src.Open(ctx)
	if err != nil {
		metrics.RecordStage(p.cfg.Job, "extract_"+entity, err, time.Since(start))
		log.Printf("extract: entity=%s FAILED: %v", entity, err)
		return extracted{err: fmt.Errorf("extract %s: %w", entity, err)}
	}
	defer rc.Close()

	recs, err := csvparser.NewParser(csvparser.Options{}).Parse(rc)
	metrics.RecordStage(p.cfg.Job, "extract_"+entity, err, time.Since(start))
	if err != nil {
		log.Printf("extract: entity=%s FAILED: %v", entity, err)
		return extracted{err: fmt.Errorf("extract %s: %w", entity, err)}
	}
	metrics.RecordRows(p.cfg.Job, entity, "processed", int64(len(recs)))
	log.Printf("extract: entity=%s rows=%d", entity, len(recs))
	return extracted{recs: recs}
}

// rawEntityStats measures the raw extract for the report: row count,
// exact-duplicate count, and missing cells across the expected fields.
func rawEntityStats(e extracted, fields []string) report.Entity {
	if e.err != nil {
		return report.Entity{FailReason: e.err.Error()}
	}
	exact := builtin.DeDup{}
	return report.Entity{
		Processed:  len(e.recs),
		Duplicates: len(e.recs) - len(exact.Apply(e.recs)),
		Missing:    records.MissingCount(e.recs, fields),
	}
}

func customerPairs(cs []model.Customer) []keymap.Pair {
	pairs := make([]keymap.Pair, 0, len(cs))
	for _, c := range cs {
		pairs = append(pairs, keymap.Pair{SourceID: c.SourceID, Surrogate: c.CustomerID})
	}
	return pairs
}

func productPairs(ps []model.Product) []keymap.Pair {
	pairs := make([]keymap.Pair, 0, len(ps))
	for _, p := range ps {
		pairs = append(pairs, keymap.Pair{SourceID: p.SourceID, Surrogate: p.ProductID})
	}
	return pairs
}

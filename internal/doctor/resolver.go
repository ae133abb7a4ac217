// Package doctor は医師ディレクトリの参照・初期投入と、医師参照文字列の解決を提供する。
package doctor

import (
	"context"
	"fmt"
	"regexp"

	"github.com/google/uuid"
	"github.com/hitoshi/medicare/internal/metrics"
	"github.com/hitoshi/medicare/internal/model"
	"github.com/hitoshi/medicare/internal/repository"
)

// canonicalIDLength はハイフン区切りUUIDの文字数。
const canonicalIDLength = 36

// IsCanonicalID はrefが医師IDとして構文上妥当（ハイフン区切りUUID）かを返す。
// 存在確認は行わない。
func IsCanonicalID(ref string) bool {
	if len(ref) != canonicalIDLength {
		return false
	}
	_, err := uuid.Parse(ref)
	return err == nil
}

// NamePattern はrefと名前全体が一致する正規表現を返す。
// refに含まれるメタ文字は全てエスケープされ、リテラルとして比較される。
// 大文字小文字の区別はリポジトリ側（~*演算子）で無視される。
func NamePattern(ref string) string {
	return "^" + regexp.QuoteMeta(ref) + "$"
}

// Resolver は医師参照文字列（IDまたは名前）を医師レコードに解決する。
type Resolver struct {
	repo    repository.DoctorRepository
	metrics metrics.MetricsCollector
}

// NewResolver はResolverを生成する。
func NewResolver(repo repository.DoctorRepository, collector metrics.MetricsCollector) *Resolver {
	if collector == nil {
		collector = metrics.Nop{}
	}
	return &Resolver{repo: repo, metrics: collector}
}

// Resolve はrefを医師レコードに解決する。
//  1. refがID形式ならIDで検索し、見つかればそれを返す
//  2. 見つからなければ名前の完全一致（大文字小文字無視）で検索する
//  3. どちらでも見つからなければDoctorNotFoundエラーを返す
func (r *Resolver) Resolve(ctx context.Context, ref string) (*model.Doctor, error) {
	if IsCanonicalID(ref) {
		d, err := r.repo.FindByID(ctx, ref)
		if err != nil {
			return nil, fmt.Errorf("failed to find doctor by ID: %w", err)
		}
		if d != nil {
			r.metrics.RecordDoctorResolution(metrics.ResolveByID)
			return d, nil
		}
	}

	d, err := r.repo.FindByNamePattern(ctx, NamePattern(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to find doctor by name: %w", err)
	}
	if d != nil {
		r.metrics.RecordDoctorResolution(metrics.ResolveByName)
		return d, nil
	}

	r.metrics.RecordDoctorResolution(metrics.ResolveNotFound)
	return nil, model.NewDoctorNotFoundError()
}

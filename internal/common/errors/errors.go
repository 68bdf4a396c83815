// Package errors: 추천 서비스 전체에서 공용으로 사용되는 에러 타입들을 정의한다.
// 저장소/파이프라인 등 레이어 간 공유되는 인프라스트럭처 에러 타입을 포함한다.
package errors

import (
	"errors"
	"fmt"
)

// RedisError: Redis/Valkey 작업을 수행하는 도중 발생한 에러
type RedisError struct {
	Operation string
	Err       error
}

func (e RedisError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("redis error operation=%s", e.Operation)
	}
	return fmt.Sprintf("redis error operation=%s: %v", e.Operation, e.Err)
}

func (e RedisError) Unwrap() error { return e.Err }

// DatabaseError: 데이터베이스(PostgreSQL 등) 작업을 수행하는 도중 발생한 에러
type DatabaseError struct {
	Operation string
	Err       error
}

func (e DatabaseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("db error operation=%s", e.Operation)
	}
	return fmt.Sprintf("db error operation=%s: %v", e.Operation, e.Err)
}

func (e DatabaseError) Unwrap() error { return e.Err }

// LockError: 사용자별 계산 락 획득 실패 시 발생하는 에러
type LockError struct {
	UserID      string
	Description string
}

func (e LockError) Error() string {
	msg := e.Description
	if msg == "" {
		msg = "failed to acquire lock"
	}
	if e.UserID != "" {
		msg = fmt.Sprintf("%s user=%s", msg, e.UserID)
	}
	return msg
}

// DataIntegrityError: 카탈로그 원본 데이터가 누락되었거나 형식이 잘못되었을 때 발생하는 에러.
// 로드 시점에 치명적(fatal)으로 처리되어 기동을 중단시킨다.
type DataIntegrityError struct {
	Source string // 문제가 발생한 원본 (예: games.csv)
	Reason string
}

func (e DataIntegrityError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("data integrity error: %s", e.Reason)
	}
	return fmt.Sprintf("data integrity error source=%s: %s", e.Source, e.Reason)
}

// NotFoundError: 사용자의 평가/추천 데이터가 존재하지 않을 때 발생하는 에러.
// 복구 가능한 에러로, 호출자에게 404/absent로 전달되며 크래시로 이어지지 않는다.
type NotFoundError struct {
	Kind string // 데이터 종류 (예: recommendations, ratings)
	Key  string
}

func (e NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Kind)
	}
	return fmt.Sprintf("%s not found key=%s", e.Kind, e.Key)
}

// ComputationError: 추천 계산 파이프라인 도중 발생한 예기치 못한 에러.
// 해당 사용자 요청에만 격리되며, 이전에 저장된 결과를 훼손하지 않는다.
type ComputationError struct {
	Stage string // 실패한 단계 (예: similarity, aggregate)
	Err   error
}

func (e ComputationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("computation error stage=%s", e.Stage)
	}
	return fmt.Sprintf("computation error stage=%s: %v", e.Stage, e.Err)
}

func (e ComputationError) Unwrap() error { return e.Err }

// IsNotFound: 에러가 NotFoundError인지 확인한다.
func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

// IsDataIntegrity: 에러가 DataIntegrityError인지 확인한다.
func IsDataIntegrity(err error) bool {
	var target DataIntegrityError
	return errors.As(err, &target)
}

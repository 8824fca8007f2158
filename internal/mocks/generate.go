package mocks

//go:generate mockery --name TotalsStore --srcpkg github.com/aevon-lab/timesheet/internal/aggregation --output ./aggregation --outpkg aggregationmocks --with-expecter
//go:generate mockery --name IntervalStore --srcpkg github.com/aevon-lab/timesheet/internal/core/storage --output ./storage --outpkg storagemocks --with-expecter

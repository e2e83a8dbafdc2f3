/*
 * Copyright 2024 The fastjson Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package simdjson

import "github.com/oldboldpilot/fastjson/query"

// Query returns a lazy query.Chain (C10) over v's array elements, or an
// empty chain if v is not an array. This is the bridge between the value
// tree (C5) and the query pipeline, letting a parsed JSON array flow
// straight into filter/transform/fold without an intermediate copy into
// a user slice.
func (v *Value) Query() *query.Chain[*Value] {
	return query.From(v.ArrayItems())
}

// QueryParallel is Query, but the returned chain fans stateless stages
// and short-circuit terminals out across workers goroutines (GOMAXPROCS
// if workers <= 0).
func (v *Value) QueryParallel(workers int) *query.Chain[*Value] {
	return query.FromParallel(v.ArrayItems(), workers)
}

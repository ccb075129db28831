/*
Copyright 2025 The llm-d Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package core

// CapacityFor returns the per-school capacity students ÷ schools, or a
// ConfigurationError when there are no schools or the division is not exact.
func CapacityFor(students, schools int) (int, error) {
	if schools <= 0 {
		return 0, NewConfigurationError(nil, "at least one school is required, got %d", schools)
	}
	if students <= 0 {
		return 0, NewConfigurationError(nil, "at least one student is required, got %d", students)
	}
	if students%schools != 0 {
		return 0, NewConfigurationError(ErrUnevenCapacity, "%d students and %d schools", students, schools)
	}
	return students / schools, nil
}
